package packet

import (
	"strconv"
	"strings"
)

// EncodeMessage serializes a MESSAGE packet to its wire text form.
// Attachment bytes are not included; the caller (the client facade)
// sends them as separate WebSocket BINARY frames in order after the
// text frame, per §4.3/§4.8.
//
// The encoder mirrors the source's length-probe-then-single-allocate
// strategy: each segment's width is computed first via strconv, then
// one strings.Builder of the summed capacity is filled in order. The
// attachment-count segment uses p.AttachmentCount(), not a rescan of
// placeholders; invariant I1 is the caller's responsibility.
func EncodeMessage(p *Packet) (string, error) {
	if p.EIOType() != EIOMessage {
		return "", ErrInvalidArg
	}
	if !p.SIOType().Valid() {
		return "", ErrInvalidArg
	}

	var binHeader string
	if p.SIOType().HasBinary() {
		binHeader = strconv.Itoa(p.AttachmentCount()) + "-"
	}

	var nspSeg string
	if p.HasNsp() && p.Nsp() != "/" {
		nspSeg = p.Nsp() + ","
	}

	var eventIDSeg string
	if p.SIOType().HasEventID() && p.EventID() >= 0 {
		eventIDSeg = strconv.Itoa(p.EventID())
	}

	jsonSeg := p.JSON()

	total := 2 + len(binHeader) + len(nspSeg) + len(eventIDSeg) + len(jsonSeg)
	var b strings.Builder
	b.Grow(total)
	b.WriteByte(byte(EIOMessage))
	b.WriteByte(byte(p.SIOType()))
	b.WriteString(binHeader)
	b.WriteString(nspSeg)
	b.WriteString(eventIDSeg)
	b.Write(jsonSeg)

	text := b.String()
	p.setEncodedText(text)
	return text, nil
}
