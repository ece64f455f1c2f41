//go:build tools

package tools

// Development tools, installed with `go install` rather than imported:
// - github.com/matryer/moq generates the *_mock_test.go files via go:generate
// - github.com/pressly/goose/v3/cmd/goose applies migrations/ by hand when
//   DATABASE_AUTO_MIGRATE is off
