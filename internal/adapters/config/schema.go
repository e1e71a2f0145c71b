package config

// Memofile is the structure of the .memo.yaml configuration file.
// Empty fields keep their built-in defaults.
type Memofile struct {
	Store       string   `yaml:"store"`
	Fingerprint string   `yaml:"fingerprint"`
	Digest      string   `yaml:"digest"`
	Irrelevant  []string `yaml:"irrelevant"`
	Strace      string   `yaml:"strace"`
	Shell       string   `yaml:"shell"`
	Telemetry   string   `yaml:"telemetry"`
}
