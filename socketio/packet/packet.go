package packet

// Packet is one Engine.IO/Socket.IO frame. A client preallocates one
// long-lived receive packet (for EVENT/ACK and binary frames) and one
// long-lived send packet and reuses them via Reset; CONNECT, DISCONNECT
// and CONNECT_ERROR frames are decoded into a fresh packet each.
//
// Getters never fail: absent fields report sentinel values (EIOUnknown
// /SIOUnknown for types, "/" for namespace, -1 for event id, nil for
// json, 0 for attachment count).
type Packet struct {
	eioType EIOType
	sioType SIOType

	nsp     string // "" means absent/default
	hasNsp  bool
	eventID int // -1 means absent

	json []byte // compact JSON, already validated

	attachments  [][]byte
	expectBinary int // attachment count declared by the BINARY_* header

	encodedText string // cache set by the encoder, transient
}

// New returns an empty packet ready for SetHeader/SetJSON/AddBinary.
func New() *Packet {
	p := &Packet{}
	p.Reset()
	return p
}

// Reset releases all owned storage (json, attachments) and returns the
// packet to its empty state, per invariant I5's reset-and-rebuild
// discipline.
func (p *Packet) Reset() {
	p.eioType = EIOUnknown
	p.sioType = SIOUnknown
	p.nsp = ""
	p.hasNsp = false
	p.eventID = -1
	p.json = nil
	p.attachments = nil
	p.expectBinary = 0
	p.encodedText = ""
}

// SetHeader sets the eio/sio type and, for MESSAGE packets, the
// namespace and event id. An empty nsp means absent/default. A negative
// eventID means absent.
func (p *Packet) SetHeader(eio EIOType, sio SIOType, nsp string, eventID int) {
	p.eioType = eio
	p.sioType = sio
	if nsp == "" || nsp == "/" {
		p.hasNsp = false
		p.nsp = ""
	} else {
		p.hasNsp = true
		p.nsp = nsp
	}
	p.eventID = eventID
}

// SetJSON deep-copies data in as the packet's compact-encoded JSON
// payload. Callers pass already-marshaled bytes; the parser validates
// them before calling SetJSON, and a caller building a packet for the
// encoder marshals its value before calling it.
func (p *Packet) SetJSON(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	p.json = cp
}

// AddBinary appends an attachment; its index is its position in
// attachments, assigned automatically (invariant I2).
func (p *Packet) AddBinary(data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	p.attachments = append(p.attachments, cp)
}

// EIOType returns the Engine.IO packet type, or EIOUnknown if unset.
func (p *Packet) EIOType() EIOType { return p.eioType }

// SIOType returns the Socket.IO packet type, meaningful only when
// EIOType() == EIOMessage.
func (p *Packet) SIOType() SIOType { return p.sioType }

// Nsp returns the namespace path, defaulting to "/" when absent.
func (p *Packet) Nsp() string {
	if !p.hasNsp {
		return "/"
	}
	return p.nsp
}

// HasNsp reports whether a namespace was explicitly set (as opposed to
// defaulted). Per spec §9, a parser may report either "/" or absent for
// the default namespace; callers should compare via Nsp(), not this.
func (p *Packet) HasNsp() bool { return p.hasNsp }

// EventID returns the event id, or -1 if absent.
func (p *Packet) EventID() int { return p.eventID }

// JSON returns the compact JSON payload, or nil if absent.
func (p *Packet) JSON() []byte { return p.json }

// Attachments returns the ordered binary attachments recorded so far.
func (p *Packet) Attachments() [][]byte { return p.attachments }

// AttachmentCount returns len(Attachments()).
func (p *Packet) AttachmentCount() int { return len(p.attachments) }

// ExpectedBinaryCount returns the attachment count declared by a
// BINARY_EVENT/BINARY_ACK header, before all attachments have arrived.
func (p *Packet) ExpectedBinaryCount() int { return p.expectBinary }

// setExpectedBinaryCount is used by the decoder while parsing a
// BINARY_EVENT/BINARY_ACK header.
func (p *Packet) setExpectedBinaryCount(n int) { p.expectBinary = n }

// EncodedText returns the cached encoded text frame set by the encoder,
// or "" if the packet was never encoded.
func (p *Packet) EncodedText() string { return p.encodedText }

func (p *Packet) setEncodedText(s string) { p.encodedText = s }

// IsComplete reports whether a binary packet has collected every
// attachment its header declared.
func (p *Packet) IsComplete() bool {
	if !p.sioType.HasBinary() {
		return true
	}
	return len(p.attachments) >= p.expectBinary
}
