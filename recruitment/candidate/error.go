package candidate

import (
	"net/http"

	"github.com/matchhire/matchhire/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeCandidateNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeInvalidStatus      = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate status")
	CodeInvalidFilter      = ErrRegistry.Register("INVALID_FILTER", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate list filter")
	CodeInvalidFile        = ErrRegistry.Register("INVALID_FILE", errx.TypeValidation, http.StatusBadRequest, "Invalid resume file")
	CodeFileTooLarge       = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "Resume file exceeds size limit")
	CodeTooManyFiles       = ErrRegistry.Register("TOO_MANY_FILES", errx.TypeValidation, http.StatusBadRequest, "Too many files in one upload")
	CodeNotesTooLong       = ErrRegistry.Register("NOTES_TOO_LONG", errx.TypeValidation, http.StatusBadRequest, "Notes exceed maximum length")
	CodeTextExtractFailed  = ErrRegistry.Register("TEXT_EXTRACT_FAILED", errx.TypeValidation, http.StatusBadRequest, "Could not read text from resume file")
	CodeExtractionFailed   = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to extract resume fields")
	CodePersistenceFailure = ErrRegistry.Register("PERSISTENCE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "Failed to store candidate")
)

func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidFilter() *errx.Error {
	return ErrRegistry.New(CodeInvalidFilter)
}

func ErrInvalidFile() *errx.Error {
	return ErrRegistry.New(CodeInvalidFile)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrTooManyFiles() *errx.Error {
	return ErrRegistry.New(CodeTooManyFiles)
}

func ErrNotesTooLong() *errx.Error {
	return ErrRegistry.New(CodeNotesTooLong)
}

func ErrTextExtractFailed() *errx.Error {
	return ErrRegistry.New(CodeTextExtractFailed)
}

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrPersistenceFailure(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodePersistenceFailure, cause)
}
