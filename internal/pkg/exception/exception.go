package exception

import (
	"errors"
	"fmt"
)

// Kind names the class of an application error as exposed to clients.
type Kind string

const (
	KindRequestValidation    Kind = "RequestValidationError"
	KindAdultPerInfantsOnLap Kind = "AdultPerInfantsOnLapError"
	KindNoFlightsFound       Kind = "NoFlightsFound"
	KindScraping             Kind = "ScrapingError"
	KindEmptyTextInput       Kind = "EmptyTextInputError"
	KindInvalidAudioFormat   Kind = "InvalidAudioFormat"
	KindAudioFileTooLarge    Kind = "AudioFileTooLarge"
	KindTranscription        Kind = "TranscriptionError"
	KindStructuredExtraction Kind = "StructuredExtractionError"
	KindInternal             Kind = "InternalServerError"
)

// ApplicationError handles application level errors.
type ApplicationError struct {
	Kind       Kind
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return errors.New(e.Message)
	}

	return e.Cause
}

func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Cause == targetErr.Cause &&
		e.Kind == targetErr.Kind &&
		e.Message == targetErr.Message
}

// ErrorCode returns error code for an application error.
func (e ApplicationError) ErrorCode() int {
	return e.StatusCode
}

// KindOf returns the kind of the first ApplicationError in the chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var appErr ApplicationError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}

	return KindInternal
}
