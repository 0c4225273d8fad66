package domain

import (
	"errors"
)

// error kinds surfaced by the engine, check with errors.Is
var (
	ErrConfigInvalid    = errors.New("ConfigInvalid")
	ErrCollectionFailed = errors.New("CollectionFailed")
	ErrExtractionEmpty  = errors.New("ExtractionEmpty")
	ErrFeedBusy         = errors.New("FeedBusy")
	ErrDeadlineExceeded = errors.New("DeadlineExceeded")
	ErrPublishFailed    = errors.New("PublishFailed")
	ErrNothingToPublish = errors.New("NothingToPublish")
)

var kinds = []error{ErrConfigInvalid, ErrCollectionFailed, ErrExtractionEmpty, ErrFeedBusy,
	ErrDeadlineExceeded, ErrPublishFailed, ErrNothingToPublish}

// KindOf returns the name of the error kind wrapped by err, or "unknown"
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k.Error()
		}
	}
	return "unknown"
}
