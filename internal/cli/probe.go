package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/enigma"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/features"
	"github.com/imraghavojha/enigma-ml-cryptanalysis/internal/rotor"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Run one simulator invocation and report the outcome",
	Long: `Probe encrypts a single plaintext through the simulator and prints
what came back. Use it to verify the simulator path, argument contract,
and output behavior before committing to a long generation run.

Examples:
  datagen probe
  datagen probe --plaintext ANGRIFFIMMORGENGRAUEN --position BCD
  datagen probe --enigma ./build/enigma`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().String("plaintext", "WETTERBERICHT", "Plaintext to encrypt (A-Z only)")
	probeCmd.Flags().String("position", "AAA", "Rotor position, three letters A-Z")
}

func runProbe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	plaintext, _ := cmd.Flags().GetString("plaintext")
	positionArg, _ := cmd.Flags().GetString("position")

	setting, err := rotor.Parse(positionArg)
	if err != nil {
		return err
	}

	oracle := enigma.NewClient(enigma.Config{
		BinaryPath: cfg.Oracle.Binary,
		Timeout:    time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second,
	}, logger)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "simulator: %s\n", oracle.Path())
	fmt.Fprintf(out, "position:  %s\n", setting)
	fmt.Fprintf(out, "plaintext: %s\n", plaintext)

	ciphertext, err := oracle.Encrypt(cmd.Context(), plaintext, setting)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}

	fmt.Fprintf(out, "ciphertext: %s\n", ciphertext)

	if len(ciphertext) != len(plaintext) {
		return fmt.Errorf("length contract violated: plaintext %d characters, ciphertext %d",
			len(plaintext), len(ciphertext))
	}

	selfEnc := 0
	for _, shift := range features.Shifts(plaintext, ciphertext) {
		if shift == 0 {
			selfEnc++
		}
	}
	fmt.Fprintf(out, "lengths match, %d self-encryptions\n", selfEnc)
	if selfEnc > 0 {
		fmt.Fprintln(out, "warning: a faithful rotor cipher never encrypts a letter to itself")
	}
	return nil
}
