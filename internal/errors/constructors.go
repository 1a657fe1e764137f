package errors

import "fmt"

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *DeployGenError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(path string, cause error) *DeployGenError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *DeployGenError {
	return New(CategoryValidation, SeverityFatal, fmt.Sprintf("validation failed: %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Catalog errors

func RepositoryNotFound(key string, cause error) *DeployGenError {
	return Wrap(cause, CategoryCatalog, SeverityFatal, fmt.Sprintf("repository %s not found in configuration", key)).
		WithContext("repository", key)
}

// Generation errors

func ManifestInvalid(path string, cause error) *DeployGenError {
	return Wrap(cause, CategoryValidation, SeverityFatal, "existing package manifest is not valid").
		WithContext("path", path)
}

func SchemaViolation(artifact string, cause error) *DeployGenError {
	return Wrap(cause, CategoryValidation, SeverityFatal, "generated artifact violates its schema").
		WithContext("artifact", artifact)
}

func RenderFailed(artifact string, cause error) *DeployGenError {
	return Wrap(cause, CategoryRender, SeverityFatal, "artifact rendering failed").
		WithContext("artifact", artifact)
}

func WriteFailed(path string, cause error) *DeployGenError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "failed to write output file").
		WithContext("path", path)
}

// Git errors

func GitDetectFailed(dir string, cause error) *DeployGenError {
	return Wrap(cause, CategoryGit, SeverityFatal, "could not detect repository key from git remote").
		WithContext("dir", dir)
}

// Internal errors

func InternalError(message string, cause error) *DeployGenError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
