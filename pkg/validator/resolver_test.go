package validator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	args := m.Called(ctx, host)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestCachingResolver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("remembers successful lookups", func(t *testing.T) {
		t.Parallel()

		next := &MockResolver{}
		next.On("LookupHost", mock.Anything, "example.com").Return([]string{"10.0.0.1"}, nil).Once()
		r := validator.NewCachingResolver(next, time.Minute)

		for range 3 {
			addrs, err := r.LookupHost(ctx, "example.com")
			require.NoError(t, err)
			assert.Equal(t, []string{"10.0.0.1"}, addrs)
		}
		next.AssertExpectations(t)
	})

	t.Run("does not remember failures", func(t *testing.T) {
		t.Parallel()

		errNoHost := errors.New("no such host")
		next := &MockResolver{}
		next.On("LookupHost", mock.Anything, "down.test").Return(nil, errNoHost).Twice()
		r := validator.NewCachingResolver(next, time.Minute)

		_, err := r.LookupHost(ctx, "down.test")
		assert.ErrorIs(t, err, errNoHost)
		_, err = r.LookupHost(ctx, "down.test")
		assert.ErrorIs(t, err, errNoHost)
		next.AssertExpectations(t)
	})

	t.Run("collapses concurrent lookups", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		next := &MockResolver{}
		next.On("LookupHost", mock.Anything, "slow.test").
			Run(func(mock.Arguments) { <-release }).
			Return([]string{"10.0.0.2"}, nil).
			Once()
		r := validator.NewCachingResolver(next, time.Minute)

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				addrs, err := r.LookupHost(ctx, "slow.test")
				assert.NoError(t, err)
				assert.Equal(t, []string{"10.0.0.2"}, addrs)
			}()
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		next.AssertExpectations(t)
	})
}

func TestActiveURLUsesResolver(t *testing.T) {
	t.Parallel()

	next := &MockResolver{}
	next.On("LookupHost", mock.Anything, "rulekit.dev").Return([]string{"10.0.0.3"}, nil).Once()
	v := validator.New(validator.WithResolver(validator.NewCachingResolver(next, time.Minute)))

	for range 2 {
		s := v.Make(map[string]any{"site": "https://rulekit.dev/docs"}, validator.Rules{"site": "activeurl"})
		assert.True(t, s.Passes())
	}
	next.AssertExpectations(t)
}
