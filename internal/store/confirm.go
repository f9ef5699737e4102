package store

import (
	"context"
	"sync"
)

const defaultConfirmTitle = "Are you sure?"

// ConfirmationPrompt is the text shown in the confirmation modal.
type ConfirmationPrompt struct {
	Title   string
	Message string
}

// RequestConfirmation opens the confirmation modal and returns a channel
// that receives the user's answer exactly once. Whichever of OnConfirm or
// OnCancel runs first wins; later calls are ignored. Both close the modal.
func (s *Store) RequestConfirmation(p ConfirmationPrompt) <-chan bool {
	_, result := s.requestConfirmation(p)
	return result
}

// Confirm blocks until the pending confirmation is answered or ctx ends.
// Cancelling ctx resolves the request as declined.
func (s *Store) Confirm(ctx context.Context, p ConfirmationPrompt) (bool, error) {
	req, result := s.requestConfirmation(p)
	select {
	case ok := <-result:
		return ok, nil
	case <-ctx.Done():
		req.OnCancel()
		return false, ctx.Err()
	}
}

func (s *Store) requestConfirmation(p ConfirmationPrompt) (ConfirmationRequest, <-chan bool) {
	if p.Title == "" {
		p.Title = defaultConfirmTitle
	}
	id := s.confirmSeq.Add(1)
	result := make(chan bool, 1)

	var once sync.Once
	settle := func(ok bool) {
		once.Do(func() {
			result <- ok
			close(result)
			s.Dispatch(CloseConfirmation{ID: id})
		})
	}

	req := ConfirmationRequest{
		ID:        id,
		Title:     p.Title,
		Message:   p.Message,
		OnConfirm: func() { settle(true) },
		OnCancel:  func() { settle(false) },
	}
	s.Dispatch(ShowConfirmation{Request: req})
	return req, result
}
