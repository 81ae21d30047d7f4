package main

import (
	"bufio"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
)

var predictInput string

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score JSON-lines bookings from a file or stdin",
	Long: "Reads one JSON booking per line and writes one JSON result per line. A booking\n" +
		"that fails is reported on its own line and does not stop the run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if predictInput != "" && predictInput != "-" {
			f, err := os.Open(predictInput)
			if err != nil {
				return errors.Wrapf(err, "failed to open %s", predictInput)
			}
			defer f.Close()
			in = f
		}

		runner, err := loadRunner(nil)
		if err != nil {
			return err
		}
		return predictLines(pipeline.NewSession(runner), in, cmd.OutOrStdout())
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the categories known to each encoder",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := loadRunner(nil)
		if err != nil {
			return err
		}
		bundle, err := runner.Bundle()
		if err != nil {
			return err
		}
		categories := map[string][]string{artifacts.FieldFlightDay: pipeline.Days}
		for _, field := range bundle.Fields() {
			if categories[field], err = bundle.EncoderCategories(field); err != nil {
				return err
			}
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "    ")
		return enc.Encode(categories)
	},
}

func init() {
	predictCmd.Flags().StringVarP(&predictInput, "input", "i", "-", "JSON-lines booking file, - for stdin")
}

type lineResult struct {
	Line int `json:"line"`
	*pipeline.Prediction
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

// predictLines runs each line through the session in turn.
func predictLines(session *pipeline.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	enc := json.NewEncoder(out)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		result := lineResult{Line: line}

		var raw pipeline.RawBooking
		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			bad := &pipeline.Error{Kind: pipeline.KindInvalidInput, Err: err}
			result.Kind, result.Message = bad.Kind.String(), bad.Message()
		} else if prediction, err := session.Submit(raw); err != nil {
			var pErr *pipeline.Error
			if !errors.As(err, &pErr) {
				return err
			}
			result.Kind, result.Message = pErr.Kind.String(), pErr.Message()
		} else {
			result.Prediction = &prediction
		}

		if err := enc.Encode(result); err != nil {
			return errors.Wrap(err, "failed to write result")
		}
	}
	return errors.Wrap(scanner.Err(), "failed to read bookings")
}
