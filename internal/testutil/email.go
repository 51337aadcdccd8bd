package testutil

import (
	"context"
	"sync"
	"testing"
)

// RecordingSender captures outbound mail so tests can read the plaintext
// verification tokens, which otherwise only ever leave the system by email.
type RecordingSender struct {
	mu                 sync.Mutex
	verificationTokens []string
}

func (s *RecordingSender) SendVerification(_ context.Context, _ string, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verificationTokens = append(s.verificationTokens, token)
	return nil
}

func (s *RecordingSender) SendScoreNotification(context.Context, string, string, int) error {
	return nil
}

// LastVerificationToken returns the most recently emailed token.
func (s *RecordingSender) LastVerificationToken(t *testing.T) string {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.verificationTokens) == 0 {
		t.Fatal("no verification email was sent")
	}
	return s.verificationTokens[len(s.verificationTokens)-1]
}
