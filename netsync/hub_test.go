package netsync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ringseq/sequencer"
)

func testManager() *sequencer.Manager {
	return sequencer.NewManager(sequencer.Options{
		Tempo: 120,
		Scale: "major",
		Tracks: []sequencer.TrackSpec{
			{ID: "lead", Kind: sequencer.KindSynth, Channel: 1},
			{ID: "kick", Kind: sequencer.KindDrum, Channel: 10, Note: 36},
		},
	})
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return msg
}

func TestInitStateOnConnect(t *testing.T) {
	m := testManager()
	ts := httptest.NewServer(NewServer("", m).Handler())
	defer ts.Close()

	conn := dial(t, ts)
	defer conn.Close()

	msg := readMessage(t, conn)
	if msg.Type != TypeInitState {
		t.Fatalf("first message type %q, want %q", msg.Type, TypeInitState)
	}
	if msg.State == nil || msg.State.Tempo != 120 {
		t.Fatalf("baseline snapshot missing or wrong: %#v", msg.State)
	}
	if _, ok := msg.State.Tracks["lead"]; !ok {
		t.Fatal("baseline snapshot missing lead track")
	}
}

func TestInboundMessageAppliesAndRelays(t *testing.T) {
	m := testManager()
	ts := httptest.NewServer(NewServer("", m).Handler())
	defer ts.Close()

	a := dial(t, ts)
	defer a.Close()
	readMessage(t, a) // INIT_STATE

	b := dial(t, ts)
	defer b.Close()
	readMessage(t, b) // INIT_STATE

	knob := Message{Type: TypeKnobChange, TrackID: "lead", Parameter: "outerPulses", Value: 3}
	if err := a.WriteJSON(knob); err != nil {
		t.Fatal(err)
	}

	// The other participant receives the relayed mutation.
	got := readMessage(t, b)
	if got.Type != TypeKnobChange || got.TrackID != "lead" || got.Value != 3 {
		t.Fatalf("relayed message %#v", got)
	}

	// The hub applies before relaying, so state is already mutated.
	if v := m.TrackViews()[0]; v.Outer.Pulses != 3 {
		t.Fatalf("outer pulses %d, want 3", v.Outer.Pulses)
	}
}

func TestBadMessagesIgnored(t *testing.T) {
	m := testManager()
	ts := httptest.NewServer(NewServer("", m).Handler())
	defer ts.Close()

	a := dial(t, ts)
	defer a.Close()
	readMessage(t, a)

	b := dial(t, ts)
	defer b.Close()
	readMessage(t, b)

	// Malformed JSON, then an unknown type: neither mutates nor relays.
	a.WriteMessage(websocket.TextMessage, []byte("{not json"))
	a.WriteJSON(Message{Type: "TELEPORT", TrackID: "lead"})

	// A valid message afterwards proves the connection survived.
	a.WriteJSON(Message{Type: TypeLogicChange, TrackID: "lead", Operator: "XOR"})

	got := readMessage(t, b)
	if got.Type != TypeLogicChange || got.Operator != "XOR" {
		t.Fatalf("expected the logic change next, got %#v", got)
	}
	if v := m.TrackViews()[0]; v.Logic != "XOR" {
		t.Fatalf("logic %q, want XOR", v.Logic)
	}
}

func TestStateEndpoint(t *testing.T) {
	m := testManager()
	ts := httptest.NewServer(NewServer("", m).Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/state")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var state sequencer.SessionState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatal(err)
	}
	if state.Tempo != 120 || len(state.Tracks) != 2 {
		t.Fatalf("snapshot %#v", state)
	}
}
