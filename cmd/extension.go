package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExtensionPrefix prefixes the name of external commands: "folio foo" runs
// "folio-foo" when foo is not a folio command.
const ExtensionPrefix = "folio-"

// RunExtension attempts to find and execute an external folio-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath(ExtensionPrefix + subcommand)
	if err != nil {
		return false, 0
	}
	cfg, err := settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv(cfg)...)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", ExtensionPrefix+subcommand, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv passes the resolved settings to extensions as environment
// variables.
func extensionEnv(cfg *Config) []string {
	env := []string{
		EnvLedgerFile + "=" + cfg.LedgerFile,
		EnvValuation + "=" + cfg.Valuation,
		EnvLogLevel + "=" + cfg.LogLevel,
	}
	if len(cfg.Currencies) > 0 {
		env = append(env, EnvCurrencies+"="+strings.Join(cfg.Currencies, ","))
	}
	if cfg.MetricsFile != "" {
		env = append(env, EnvMetricsFile+"="+cfg.MetricsFile)
	}
	return env
}
