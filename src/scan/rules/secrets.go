package rules

import (
	"github.com/zricethezav/gitleaks/v8/detect"

	"github.com/bcgov/wordpress-scripts/src/scan"
)

func init() {
	scan.Register(scan.SecretsCheck, func() scan.Check { return &secretsCheck{} })
}

// secretsCheck flags lines that gitleaks' default ruleset recognises as a
// credential. Off unless scan.secrets is set.
type secretsCheck struct {
	detector *detect.Detector
}

func (c *secretsCheck) Name() string         { return scan.SecretsCheck }
func (c *secretsCheck) Heading() string      { return "Containing secrets:" }
func (c *secretsCheck) DefaultEnabled() bool { return false }

// Prepare implements scan.Preparer.
func (c *secretsCheck) Prepare() error {
	if c.detector != nil {
		return nil
	}
	d, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return err
	}
	c.detector = d
	return nil
}

func (c *secretsCheck) Fails(line string) bool {
	if c.detector == nil {
		return false
	}
	return len(c.detector.DetectBytes([]byte(line))) > 0
}
