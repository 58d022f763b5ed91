package utils

// LoggerInitializationFailedMessageFormat is used when the application logger cannot be constructed.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal command execution errors.
const ApplicationExecutionFailedMessage = "glimpse execution failed"

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"
