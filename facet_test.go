package facet_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agentic-research/facet"
	"github.com/agentic-research/facet/api"
)

type contact struct {
	Email string `facet:"email"`
	Phone string `facet:"phone"`
}

type account struct {
	Name    string  `facet:"name"`
	Token   string  `facet:"-"`
	Contact contact `facet:"contact"`
}

func TestMarshal_FiltersByViewPatterns(t *testing.T) {
	acct := account{
		Name:    "Ada",
		Token:   "s3cret",
		Contact: contact{Email: "ada@example.com", Phone: "555"},
	}

	t.Run("defaults only", func(t *testing.T) {
		out, err := facet.Marshal(api.NewView(acct))
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Ada","contact":{"email":"ada@example.com","phone":"555"}}`, string(out))
	})

	t.Run("exclude leaf through nested path", func(t *testing.T) {
		v := api.NewView(acct).
			ForType(account{}, api.NewMatch().Exclude("contact.phone"))
		out, err := facet.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Ada","contact":{"email":"ada@example.com"}}`, string(out))
	})

	t.Run("include resurrects tag-hidden field", func(t *testing.T) {
		v := api.NewView(acct).
			ForType(account{}, api.NewMatch().Include("Token"))
		out, err := facet.Marshal(v)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Equal(t, "s3cret", decoded["Token"])
	})
}

func TestMarshal_StringifiableMapKeys(t *testing.T) {
	id := uuid.MustParse("4f5ab90e-6f89-4b0f-8f16-b078ee7df278")
	out, err := facet.Marshal(api.NewView(map[uuid.UUID]string{id: "ok"}))
	require.NoError(t, err)
	assert.Equal(t, `{"4f5ab90e-6f89-4b0f-8f16-b078ee7df278":"ok"}`, string(out))
}

func TestSerialize_CustomSink(t *testing.T) {
	var buf bytes.Buffer
	err := facet.Serialize(api.NewView([]int{1, 2}), facet.NewJSONSink(&buf))
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, buf.String())
}

type broken struct {
	*contact
	Kept string `facet:"kept"`
}

func TestSerializer_DiagnosticsForUnreadableFields(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	var diags []api.FieldError
	s := facet.New(
		facet.WithLogger(zap.New(core)),
		facet.WithDiagnostics(func(e api.FieldError) { diags = append(diags, e) }),
	)

	out, err := s.Marshal(api.NewView(broken{Kept: "yes"}))
	require.NoError(t, err)
	assert.Equal(t, `{"kept":"yes"}`, string(out))

	require.Len(t, diags, 2) // email and phone, both behind the nil embed
	assert.Equal(t, 2, logs.FilterMessage("skipping unreadable field").Len())
}

func TestSerializer_SmallCacheStaysBounded(t *testing.T) {
	s := facet.New(facet.WithCacheCapacity(1))
	acct := account{Name: "Ada"}
	for i := 0; i < 3; i++ {
		_, err := s.Marshal(api.NewView(acct))
		require.NoError(t, err)
	}
	// Verdicts stay stable across evictions: output never changes.
	out, err := s.Marshal(api.NewView(acct))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Ada","contact":{"email":"","phone":""}}`, string(out))
}

func TestSerializer_ConcurrentRootCalls(t *testing.T) {
	s := facet.New(facet.WithCacheCapacity(4))
	acct := account{Name: "Ada", Contact: contact{Email: "e", Phone: "p"}}
	want := `{"name":"Ada","contact":{"email":"e","phone":"p"}}`

	done := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func() {
			for i := 0; i < 50; i++ {
				out, err := s.Marshal(api.NewView(acct))
				if err == nil && string(out) != want {
					err = assert.AnError
				}
				if err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}()
	}
	for g := 0; g < 8; g++ {
		require.NoError(t, <-done)
	}
}
