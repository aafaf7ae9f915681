package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCannedReply(t *testing.T) {
	cases := []struct {
		msg     string
		matched bool
		want    string
	}{
		{"cuánto sale el envío?", true, "envíos"},
		{"puedo pagar en cuotas?", true, "cuotas"},
		{"cómo hago una DEVOLUCIÓN", true, "devoluciones"},
		{"qué horario de atención tienen?", true, "Lunes a Viernes"},
		{"hay stock del smartwatch?", true, "stock"},
		{"me gusta el color azul", false, "No estoy seguro"},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			reply, matched := CannedReply(tc.msg)
			assert.Equal(t, tc.matched, matched)
			assert.True(t, strings.Contains(reply, tc.want), "reply: %s", reply)
		})
	}
}

func TestReplyWithoutTokenFallsBack(t *testing.T) {
	a := New("")
	reply := a.Reply(context.Background(), "algo sin regla")
	assert.Equal(t, fallbackReply, reply)
}
