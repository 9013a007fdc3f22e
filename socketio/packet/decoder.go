package packet

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// OpenInfo is the decoded body of an Engine.IO OPEN frame.
type OpenInfo struct {
	Sid          string
	PingInterval int
	PingTimeout  int
	MaxPayload   int
}

// DecodeOpen parses the JSON object following the '0' OPEN prefix.
// Missing or wrong-typed members fail with ErrNotFound; invalid JSON
// fails with ErrParse.
func DecodeOpen(payload []byte) (*OpenInfo, error) {
	var raw struct {
		Sid          *string `json:"sid"`
		PingInterval *int    `json:"pingInterval"`
		PingTimeout  *int    `json:"pingTimeout"`
		MaxPayload   *int    `json:"maxPayload"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotFound
		}
		return nil, ErrParse
	}
	if raw.Sid == nil || *raw.Sid == "" {
		return nil, ErrNotFound
	}
	if raw.PingInterval == nil || raw.PingTimeout == nil || raw.MaxPayload == nil {
		return nil, ErrNotFound
	}
	return &OpenInfo{
		Sid:          *raw.Sid,
		PingInterval: *raw.PingInterval,
		PingTimeout:  *raw.PingTimeout,
		MaxPayload:   *raw.MaxPayload,
	}, nil
}

// DecodeMessage parses the raw bytes of a single text WebSocket message
// beginning with the '4' MESSAGE prefix, following the anchor-scan
// algorithm of the wire grammar:
//
//	MESSAGE := '4' SIOTYPE [ BIN_HEADER ] [ NSP ',' ] [ EVENT_ID ] JSON?
//
// On success it calls dst.Reset, then populates eio/sio type, nsp,
// event id, json, and (for binary variants) the expected attachment
// count — no attachment bytes are attached here; those arrive in
// subsequent BINARY frames. On any failure dst is reset to empty and an
// error is returned.
func DecodeMessage(data []byte, dst *Packet) error {
	if len(data) < 2 || EIOType(data[0]) != EIOMessage {
		dst.Reset()
		return ErrInvalidArg
	}
	sio := SIOType(data[1])
	if !sio.Valid() {
		dst.Reset()
		return ErrInvalidArg
	}

	slashPos := bytes.IndexByte(data, '/')
	bracketPos := bytes.IndexByte(data, '[')
	commaPos := bytes.IndexByte(data, ',')

	pos := 2

	hasBinary := sio.HasBinary()
	binHeaderEnd := -1 // index just past the '-' of the binary count header
	expectBinary := 0
	if hasBinary {
		digitsStart := pos
		for pos < len(data) && data[pos] >= '0' && data[pos] <= '9' {
			pos++
		}
		if pos == digitsStart {
			dst.Reset()
			return ErrNotFound
		}
		n, err := strconv.Atoi(string(data[digitsStart:pos]))
		if err != nil {
			dst.Reset()
			return ErrNotFound
		}
		if pos >= len(data) || data[pos] != '-' {
			dst.Reset()
			return ErrNotFound
		}
		pos++
		binHeaderEnd = pos
		expectBinary = n
	}

	hasNsp := false
	nsp := ""
	if slashPos >= 0 && commaPos >= 0 && (bracketPos < 0 || commaPos < bracketPos) {
		if slashPos < commaPos {
			nsp = string(data[slashPos:commaPos])
			hasNsp = true
			pos = commaPos + 1
		}
	}

	// Event id start position per the §4.2 table.
	var eventIDStart int
	switch {
	case hasNsp:
		eventIDStart = commaPos + 1
	case hasBinary:
		eventIDStart = binHeaderEnd
	default:
		eventIDStart = 2
	}

	eventID := -1
	if sio.HasEventID() {
		jsonStart := -1
		switch sio {
		case SIOConnect, SIOConnectErr:
			jsonStart = bytes.IndexByte(data, '{')
		default:
			jsonStart = bracketPos
		}
		if jsonStart >= 0 && eventIDStart != jsonStart {
			digitsEnd := eventIDStart
			for digitsEnd < len(data) && data[digitsEnd] >= '0' && data[digitsEnd] <= '9' {
				digitsEnd++
			}
			if digitsEnd == eventIDStart || digitsEnd != jsonStart {
				dst.Reset()
				return ErrNotFound
			}
			n, err := strconv.Atoi(string(data[eventIDStart:digitsEnd]))
			if err != nil {
				dst.Reset()
				return ErrNotFound
			}
			eventID = n
		}
	}

	if hasBinary {
		count := bytes.Count(data, []byte(Placeholder))
		if count != expectBinary {
			dst.Reset()
			return ErrNotFound
		}
	}

	var jsonPayload []byte
	switch sio {
	case SIOConnect, SIOConnectErr:
		if idx := bytes.IndexByte(data, '{'); idx >= 0 {
			jsonPayload = data[idx:]
		}
	case SIOEvent, SIOAck, SIOBinaryEvent, SIOBinaryAck:
		if bracketPos >= 0 {
			jsonPayload = data[bracketPos:]
		}
	}

	if jsonPayload != nil && !json.Valid(jsonPayload) {
		dst.Reset()
		return ErrParse
	}

	dst.Reset()
	dst.SetHeader(EIOMessage, sio, nsp, eventID)
	if jsonPayload != nil {
		dst.SetJSON(jsonPayload)
	}
	if hasBinary {
		dst.setExpectedBinaryCount(expectBinary)
	}
	return nil
}
