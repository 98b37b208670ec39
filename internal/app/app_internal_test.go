package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAllChannelsClose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		giveNumChannels int
		giveCancelFirst bool
		giveCloseInputs bool
		wantClosed      bool
	}{
		{
			name:       "zero channels closes immediately",
			wantClosed: true,
		},
		{
			name:            "one channel closes when it closes",
			giveNumChannels: 1,
			giveCloseInputs: true,
			wantClosed:      true,
		},
		{
			name:            "three channels close when all close",
			giveNumChannels: 3,
			giveCloseInputs: true,
			wantClosed:      true,
		},
		{
			name:            "open inputs keep output open",
			giveNumChannels: 2,
		},
		{
			name:            "cancelled context closes output",
			giveNumChannels: 2,
			giveCancelFirst: true,
			wantClosed:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			if tt.giveCancelFirst {
				cancel()
			}

			inputs := make([]chan struct{}, 0, tt.giveNumChannels)
			chans := make([]<-chan struct{}, 0, tt.giveNumChannels)

			for range tt.giveNumChannels {
				ch := make(chan struct{})
				inputs = append(inputs, ch)
				chans = append(chans, ch)
			}

			out := allChannelsClose(ctx, slog.Default(), chans...)

			if tt.giveCloseInputs {
				for _, ch := range inputs {
					close(ch)
				}
			}

			select {
			case <-out:
				require.True(t, tt.wantClosed, "output closed unexpectedly")
			case <-time.After(100 * time.Millisecond):
				require.False(t, tt.wantClosed, "output did not close")
			}
		})
	}
}
