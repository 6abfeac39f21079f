/*
Package cliparse handles configuration parsing from CLI flags and
environment variables. Flags win over env vars; secrets are required,
the assistant settings are optional.
*/
package cliparse
