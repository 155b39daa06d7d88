package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/clipcat/internal/clip"
	"github.com/backmassage/clipcat/internal/display"
)

// parsedClip is the machine-readable form of one clip spec.
type parsedClip struct {
	Spec      string          `json:"spec" yaml:"spec"`
	Filename  string          `json:"filename" yaml:"filename"`
	Segments  []parsedSegment `json:"segments" yaml:"segments"`
	Canonical string          `json:"canonical" yaml:"canonical"`
}

type parsedSegment struct {
	Start        string   `json:"start,omitempty" yaml:"start,omitempty"`
	End          string   `json:"end,omitempty" yaml:"end,omitempty"`
	StartSeconds *float64 `json:"start_seconds,omitempty" yaml:"start_seconds,omitempty"`
	EndSeconds   *float64 `json:"end_seconds,omitempty" yaml:"end_seconds,omitempty"`
}

func newParseCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "parse <spec>...",
		Short: "Parse clip specs and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clips, err := parseClips(args)
			if err != nil {
				return err
			}
			parsed := make([]parsedClip, len(clips))
			for i, c := range clips {
				parsed[i] = toParsedClip(args[i], c)
			}

			switch strings.ToLower(output) {
			case "json":
				return writeJSON(cmd, parsed)
			case "yaml", "yml":
				return writeYAML(cmd, parsed)
			case "table", "":
				fmt.Fprintln(cmd.OutOrStdout(), renderParsed(parsed))
				return nil
			default:
				return withCode(exitUsage, fmt.Errorf("unknown output format %q (use table, json or yaml)", output))
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, json, yaml")
	return cmd
}

func toParsedClip(spec string, c clip.Clip) parsedClip {
	pc := parsedClip{
		Spec:      spec,
		Filename:  c.Filename,
		Segments:  make([]parsedSegment, len(c.Segments)),
		Canonical: clip.Format(c),
	}
	for i, s := range c.Segments {
		ps := parsedSegment{Start: s.Start.String(), End: s.End.String()}
		if s.Start.IsSet() {
			v := s.Start.Seconds()
			ps.StartSeconds = &v
		}
		if s.End.IsSet() {
			v := s.End.Seconds()
			ps.EndSeconds = &v
		}
		pc.Segments[i] = ps
	}
	return pc
}

func renderParsed(parsed []parsedClip) string {
	var rows [][]string
	for ci, pc := range parsed {
		for si, s := range pc.Segments {
			rows = append(rows, []string{
				strconv.Itoa(ci + 1),
				pc.Filename,
				strconv.Itoa(si+1) + "/" + strconv.Itoa(len(pc.Segments)),
				orOpen(s.Start, "start"),
				orOpen(s.End, "end"),
			})
		}
	}
	return display.RenderTable(
		[]string{"Clip", "File", "Segment", "Start", "End"},
		rows,
		[]display.Alignment{display.AlignRight, display.AlignLeft, display.AlignRight, display.AlignRight, display.AlignRight},
	)
}

func orOpen(tc, word string) string {
	if tc == "" {
		return "(" + word + ")"
	}
	return tc
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML encodes v as YAML to the command's stdout.
func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
