package sofa

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sofar/internal/convention"
	"sofar/internal/rules"
)

// Config controls how objects are created and where they report.
type Config struct {
	// Version of the convention: convention.Latest or a version string.
	Version string
	// MandatoryOnly creates objects with mandatory fields only. Such
	// objects are not verified on creation.
	MandatoryOnly bool
	// SkipVerify disables the verification run on creation.
	SkipVerify bool
	// Registry resolves conventions. Defaults to convention.Default().
	Registry *convention.Registry
	// Rules holds the verification rules. Defaults to rules.Default().
	Rules *rules.Registry
	// Logger receives warnings and progress messages.
	Logger logrus.FieldLogger
	// Out receives reports of OnIssuePrint and Info/Inspect callers.
	Out io.Writer
	// Now stamps GLOBAL_DateCreated and GLOBAL_DateModified.
	Now func() time.Time
}

// DefaultConfig returns the configuration used by the CLI and most callers.
func DefaultConfig() Config {
	return Config{
		Version:  convention.Latest,
		Registry: convention.Default(),
		Logger:   logrus.StandardLogger(),
		Out:      os.Stdout,
		Now:      time.Now,
	}
}

// complete fills unset fields with their defaults.
func (c Config) complete() (Config, error) {
	def := DefaultConfig()

	if c.Version == "" {
		c.Version = def.Version
	}

	if c.Registry == nil {
		c.Registry = def.Registry
	}

	if c.Logger == nil {
		c.Logger = def.Logger
	}

	if c.Out == nil {
		c.Out = def.Out
	}

	if c.Now == nil {
		c.Now = def.Now
	}

	if c.Rules == nil {
		r, err := rules.Default()
		if err != nil {
			return c, fmt.Errorf("failed to load verification rules: %w", err)
		}

		c.Rules = r
	}

	return c, nil
}

// OnIssue selects how Verify reports the issues it found.
type OnIssue int

const (
	// OnIssueFail logs warnings and returns errors as *diagnostic.Error.
	OnIssueFail OnIssue = iota
	// OnIssuePrint writes warnings and errors to Config.Out.
	OnIssuePrint
	// OnIssueCollect returns warnings and errors as text.
	OnIssueCollect
	// OnIssueIgnore discards all issues.
	OnIssueIgnore
)

var onIssueNames = []string{"fail", "print", "collect", "ignore"}

// String returns the lower-case name used on the command line.
func (o OnIssue) String() string {
	if int(o) < len(onIssueNames) && o >= 0 {
		return onIssueNames[o]
	}

	return fmt.Sprintf("OnIssue(%d)", int(o))
}

// ParseOnIssue parses "fail", "print", "collect" or "ignore". "raise" and
// "return" are accepted as aliases of fail and collect.
func ParseOnIssue(s string) (OnIssue, error) {
	switch strings.ToLower(s) {
	case "fail", "raise":
		return OnIssueFail, nil
	case "print":
		return OnIssuePrint, nil
	case "collect", "return":
		return OnIssueCollect, nil
	case "ignore":
		return OnIssueIgnore, nil
	}

	return OnIssueFail, fmt.Errorf("on-issue is %s but must be %s", s, strings.Join(onIssueNames, ", "))
}

// Mode distinguishes the checks for data read from disk and data about to
// be written. Writing is stricter.
type Mode int

const (
	ModeRead Mode = iota
	ModeWrite
)

// String returns "read" or "write".
func (m Mode) String() string {
	if m == ModeWrite {
		return "write"
	}

	return "read"
}

// ParseMode parses "read" or "write".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "read":
		return ModeRead, nil
	case "write":
		return ModeWrite, nil
	}

	return ModeRead, fmt.Errorf("mode is %s but must be read or write", s)
}
