package job

import (
	"net/http"

	"github.com/matchhire/matchhire/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job posting not found")
	CodeNoActiveJob        = ErrRegistry.Register("NO_ACTIVE_JOB", errx.TypeNotFound, http.StatusNotFound, "No active job posting")
	CodeJobAlreadyExists   = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Job posting already exists")
	CodeInvalidFile        = ErrRegistry.Register("INVALID_FILE", errx.TypeValidation, http.StatusBadRequest, "Invalid job description file")
	CodeFileTooLarge       = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "Job description file exceeds size limit")
	CodeExtractionFailed   = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to extract job description fields")
	CodeEmbeddingFailed    = ErrRegistry.Register("EMBEDDING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to generate job embedding")
	CodeTextExtractFailed  = ErrRegistry.Register("TEXT_EXTRACT_FAILED", errx.TypeValidation, http.StatusBadRequest, "Could not read text from job description file")
	CodeActivationFailed   = ErrRegistry.Register("ACTIVATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to activate job posting")
	CodePersistenceFailure = ErrRegistry.Register("PERSISTENCE_FAILURE", errx.TypeInternal, http.StatusInternalServerError, "Failed to store job posting")
)

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrNoActiveJob() *errx.Error {
	return ErrRegistry.New(CodeNoActiveJob)
}

func ErrJobAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeJobAlreadyExists)
}

func ErrInvalidFile() *errx.Error {
	return ErrRegistry.New(CodeInvalidFile)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrExtractionFailed() *errx.Error {
	return ErrRegistry.New(CodeExtractionFailed)
}

func ErrEmbeddingFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingFailed)
}

func ErrTextExtractFailed() *errx.Error {
	return ErrRegistry.New(CodeTextExtractFailed)
}

func ErrActivationFailed() *errx.Error {
	return ErrRegistry.New(CodeActivationFailed)
}
