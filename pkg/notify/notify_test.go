package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulti_DeliversToAll(t *testing.T) {
	var got []string
	record := func(name string, err error) Notifier {
		return Func(func(ctx context.Context, n Notification) error {
			got = append(got, name+":"+n.Title)
			return err
		})
	}
	boom := errors.New("boom")

	err := Multi{record("a", nil), nil, record("b", boom), record("c", nil)}.Notify(context.Background(), Notification{Title: "t"})

	assert.Equal(t, []string{"a:t", "b:t", "c:t"}, got)
	assert.ErrorIs(t, err, boom)
}

func TestChannel_NeverBlocks(t *testing.T) {
	ch := NewChannel(1)

	require.NoError(t, ch.Notify(context.Background(), Notification{Title: "first"}))
	assert.ErrorIs(t, ch.Notify(context.Background(), Notification{Title: "second"}), ErrChannelFull)

	n := <-ch.C()
	assert.Equal(t, "first", n.Title)
}

func TestDesktopCommand(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		n        Notification
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "linux success",
			goos:     "linux",
			n:        Notification{Title: "Taildrop Send", Message: "2 files sent to desktop"},
			wantName: "notify-send",
			wantArgs: []string{"-u", "normal", "-i", "dialog-information", "-a", "Taildrop", "Taildrop Send", "2 files sent to desktop"},
		},
		{
			name:     "linux error",
			goos:     "freebsd",
			n:        Notification{Title: "Taildrop Send failed", Message: "disk full", Error: true},
			wantName: "notify-send",
			wantArgs: []string{"-u", "critical", "-i", "dialog-error", "-a", "Taildrop", "Taildrop Send failed", "disk full"},
		},
		{
			name:     "darwin",
			goos:     "darwin",
			n:        Notification{Title: "Done", Message: `say "hi"`},
			wantName: "osascript",
			wantArgs: []string{"-e", `display notification "say \"hi\"" with title "Done"`},
		},
		{
			name:    "windows unsupported",
			goos:    "windows",
			n:       Notification{Title: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, err := desktopCommand(tt.goos, "Taildrop", tt.n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestDesktopCommand_TruncatesLongMessages(t *testing.T) {
	long := make([]byte, maxDesktopMessageLen+50)
	for i := range long {
		long[i] = 'x'
	}

	_, args, err := desktopCommand("linux", "", Notification{Title: "t", Message: string(long)})
	require.NoError(t, err)

	msg := args[len(args)-1]
	assert.Len(t, msg, maxDesktopMessageLen+3)
	assert.NotContains(t, args, "-a")
}

func TestDesktopCommand_TruncatesOnCharacterBoundary(t *testing.T) {
	message := strings.Repeat("a", maxDesktopMessageLen-1) + strings.Repeat("é", 10)

	_, args, err := desktopCommand("linux", "", Notification{Title: "t", Message: message})
	require.NoError(t, err)

	msg := args[len(args)-1]
	assert.True(t, utf8.ValidString(msg))
	assert.Equal(t, strings.Repeat("a", maxDesktopMessageLen-1)+"é...", msg)
}
