package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"
)

func TestOwnerOnly(t *testing.T) {
	b, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)

	calls := 0
	h := OwnerOnly(42, zap.NewNop())(func(c tele.Context) error {
		calls++
		return nil
	})

	owner := b.NewContext(tele.Update{Message: &tele.Message{Chat: &tele.Chat{ID: 42}, Text: "/status"}})
	stranger := b.NewContext(tele.Update{Message: &tele.Message{Chat: &tele.Chat{ID: 7}, Text: "/status"}})
	empty := b.NewContext(tele.Update{})

	require.NoError(t, h(owner))
	require.NoError(t, h(stranger))
	require.NoError(t, h(empty))
	assert.Equal(t, 1, calls)
}
