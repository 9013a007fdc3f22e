package packet

import "testing"

func TestDecodeOpen(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
		want    *OpenInfo
	}{
		{
			name:    "valid",
			payload: `{"sid":"abc","pingInterval":25000,"pingTimeout":5000,"maxPayload":1000000}`,
			want:    &OpenInfo{Sid: "abc", PingInterval: 25000, PingTimeout: 5000, MaxPayload: 1000000},
		},
		{
			name:    "missing sid",
			payload: `{"pingInterval":25000,"pingTimeout":5000,"maxPayload":1000000}`,
			wantErr: ErrNotFound,
		},
		{
			name:    "missing pingInterval",
			payload: `{"sid":"abc","pingTimeout":5000,"maxPayload":1000000}`,
			wantErr: ErrNotFound,
		},
		{
			name:    "invalid json",
			payload: `{not json`,
			wantErr: ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeOpen([]byte(tt.payload))
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *got != *tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeMessageScenarios(t *testing.T) {
	t.Run("default namespace connect", func(t *testing.T) {
		p := New()
		if err := DecodeMessage([]byte(`40{"sid":"xyz"}`), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.SIOType() != SIOConnect {
			t.Fatalf("sio type = %v, want connect", p.SIOType())
		}
		if p.Nsp() != "/" {
			t.Fatalf("nsp = %q, want /", p.Nsp())
		}
		if string(p.JSON()) != `{"sid":"xyz"}` {
			t.Fatalf("json = %s", p.JSON())
		}
	})

	t.Run("custom namespace connect", func(t *testing.T) {
		p := New()
		if err := DecodeMessage([]byte(`40/chat,{"sid":"qrs"}`), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Nsp() != "/chat" {
			t.Fatalf("nsp = %q, want /chat", p.Nsp())
		}
	})

	t.Run("binary event reassembly header", func(t *testing.T) {
		p := New()
		input := `452-/chat,0["hello",1,true,3.14,{"_placeholder":true,"num":0},{"_placeholder":true,"num":1}]`
		if err := DecodeMessage([]byte(input), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.SIOType() != SIOBinaryEvent {
			t.Fatalf("sio type = %v, want binary_event", p.SIOType())
		}
		if p.Nsp() != "/chat" {
			t.Fatalf("nsp = %q, want /chat", p.Nsp())
		}
		if p.EventID() != 0 {
			t.Fatalf("event id = %d, want 0", p.EventID())
		}
		if p.ExpectedBinaryCount() != 2 {
			t.Fatalf("expected binary count = %d, want 2", p.ExpectedBinaryCount())
		}
	})

	t.Run("placeholder mismatch fails", func(t *testing.T) {
		p := New()
		input := `452-/chat,0["x",{"_placeholder":true,"num":0}]`
		err := DecodeMessage([]byte(input), p)
		if err != ErrNotFound {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		if p.SIOType() != SIOUnknown {
			t.Fatalf("packet was not reset on failure")
		}
	})

	t.Run("event id directly followed by bracket", func(t *testing.T) {
		p := New()
		if err := DecodeMessage([]byte(`42["foo"]`), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.EventID() != -1 {
			t.Fatalf("event id = %d, want -1 (absent)", p.EventID())
		}
		if err := DecodeMessage([]byte(`425["foo"]`), p); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.EventID() != 5 {
			t.Fatalf("event id = %d, want 5", p.EventID())
		}
	})

	t.Run("invalid sio type rejected", func(t *testing.T) {
		p := New()
		if err := DecodeMessage([]byte("49[]"), p); err != ErrInvalidArg {
			t.Fatalf("err = %v, want ErrInvalidArg", err)
		}
	})
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sio  SIOType
		nsp  string
		id   int
		json string
	}{
		{"default ns event no id", SIOEvent, "/", -1, `["foo",1]`},
		{"custom ns event with id", SIOEvent, "/chat", 7, `["foo",1]`},
		{"ack no nsp", SIOAck, "/", 3, `[1]`},
		{"connect default", SIOConnect, "/", -1, `{"sid":"abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := New()
			src.SetHeader(EIOMessage, tt.sio, tt.nsp, tt.id)
			src.SetJSON([]byte(tt.json))

			text, err := EncodeMessage(src)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			dst := New()
			if err := DecodeMessage([]byte(text), dst); err != nil {
				t.Fatalf("decode(%q): %v", text, err)
			}
			if dst.SIOType() != tt.sio {
				t.Fatalf("sio type = %v, want %v", dst.SIOType(), tt.sio)
			}
			if dst.Nsp() != tt.nsp {
				t.Fatalf("nsp = %q, want %q", dst.Nsp(), tt.nsp)
			}
			if dst.EventID() != tt.id {
				t.Fatalf("event id = %d, want %d", dst.EventID(), tt.id)
			}
			if string(dst.JSON()) != tt.json {
				t.Fatalf("json = %s, want %s", dst.JSON(), tt.json)
			}
		})
	}
}

func TestEIOTypeValid(t *testing.T) {
	for b := 0; b < 256; b++ {
		want := b >= '0' && b <= '6'
		if got := EIOType(b).Valid(); got != want {
			t.Fatalf("EIOType(%d).Valid() = %v, want %v", b, got, want)
		}
	}
}

func TestPacketReset(t *testing.T) {
	p := New()
	p.SetHeader(EIOMessage, SIOEvent, "/chat", 4)
	p.SetJSON([]byte(`["a"]`))
	p.AddBinary([]byte{1, 2, 3})

	p.Reset()

	if p.EIOType() != EIOUnknown || p.SIOType() != SIOUnknown {
		t.Fatal("Reset did not clear types")
	}
	if p.Nsp() != "/" {
		t.Fatalf("Reset did not clear nsp, got %q", p.Nsp())
	}
	if p.EventID() != -1 {
		t.Fatal("Reset did not clear event id")
	}
	if p.JSON() != nil {
		t.Fatal("Reset did not clear json")
	}
	if p.AttachmentCount() != 0 {
		t.Fatal("Reset did not clear attachments")
	}
}
