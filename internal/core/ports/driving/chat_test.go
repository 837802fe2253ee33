package driving

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktaba-labs/maktaba-cli/internal/core/domain"
)

// recordingChat records which method Dispatch called.
type recordingChat struct {
	calls []string
}

func (r *recordingChat) record(call string) (*Reply, error) {
	r.calls = append(r.calls, call)
	return &Reply{Kind: ReplyNotice}, nil
}

func (r *recordingChat) Query(_ context.Context, _, text string) (*Reply, error) {
	return r.record("query:" + text)
}

func (r *recordingChat) Handle(_ context.Context, _, event string) (*Reply, error) {
	return r.record("handle:" + event)
}

func (r *recordingChat) Next(context.Context, string) (*Reply, error) { return r.record("next") }
func (r *recordingChat) Prev(context.Context, string) (*Reply, error) { return r.record("prev") }

func (r *recordingChat) Select(_ context.Context, _, ref string) (*Reply, error) {
	return r.record("select:" + ref)
}

func (r *recordingChat) BrowseIndex(_ context.Context, _, key string) (*Reply, error) {
	return r.record("browse:" + key)
}

func (r *recordingChat) IndexPage(context.Context, string, int) (*Reply, error) {
	return r.record("index_page")
}

func (r *recordingChat) SetLanguage(_ context.Context, _ string, lang domain.Language) (*Reply, error) {
	return r.record("lang:" + lang.String())
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"  رواية الحرافيش ", "query:رواية الحرافيش"},
		{"/next", "handle:next"},
		{"/ select:3", "handle:select:3"},
		{"/indexes", "index_page"},
		{"/index:novels", "handle:index:novels"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			chat := &recordingChat{}

			_, err := Dispatch(context.Background(), chat, "c1", tt.line)

			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, chat.calls)
		})
	}
}

func TestErrorReply(t *testing.T) {
	reply := ErrorReply(errors.Join(errors.New("boom"), domain.ErrStoreUnavailable))

	assert.Equal(t, ReplyNotice, reply.Kind)
	assert.Equal(t, domain.CategoryUnavailable, reply.Category)
	assert.Equal(t, domain.CategoryUnavailable.Message(), reply.Message)
}
