// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/dropkit/dropcfg/internal/command"
)

//go:embed templates/*.tmpl templates/examples.yaml
var templates embed.FS

type Subcommand struct {
	ID          string
	Short       string
	Usage       string
	Flags       []Flag
	Examples    []Example
	Description string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Example struct {
	Command     string `yaml:"command"`
	Description string `yaml:"description"`
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen DOCS_DIR")
		os.Exit(1)
	}
	docs := os.Args[1]

	app, err := command.InitApp(context.Background(), []string{"dropcfg"})
	if err != nil {
		panic(err)
	}

	examples, err := loadExamples()
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: "dropcfg.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "dropcfg.tldr.tmpl", Folder: filepath.Join(docs, "tldr"), Prefix: "dropcfg-", Suffix: ".md"},
	}

	for _, sub := range subcommands(app, examples) {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0o755); err != nil {
				panic(err)
			}

			path := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", path)
			if err := render(path, t.Template, metadata); err != nil {
				panic(err)
			}
		}
	}
}

// subcommands describes every command of app, flags sorted by name.
func subcommands(app *cli.Command, examples map[string][]Example) []Subcommand {
	var subs []Subcommand
	for _, c := range app.Commands {
		sub := Subcommand{
			ID:          c.Name,
			Short:       c.Usage,
			Usage:       c.UsageText,
			Description: c.Description,
			Examples:    examples[c.Name],
		}
		for _, f := range c.Flags {
			sub.Flags = append(sub.Flags, describeFlag(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		subs = append(subs, sub)
	}
	return subs
}

func describeFlag(f cli.Flag) Flag {
	names := f.Names()
	syntax := make([]string, 0, len(names))
	for _, n := range names {
		if len(n) == 1 {
			syntax = append(syntax, "-"+n)
		} else {
			syntax = append(syntax, "--"+n)
		}
	}

	flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
	if df, ok := f.(cli.DocGenerationFlag); ok {
		flag.Description = df.GetUsage()
		if df.TakesValue() {
			flag.Default = df.GetValue()
		}
	}
	return flag
}

func loadExamples() (map[string][]Example, error) {
	data, err := templates.ReadFile("templates/examples.yaml")
	if err != nil {
		return nil, err
	}
	examples := map[string][]Example{}
	if err := yaml.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("failed to parse examples: %w", err)
	}
	return examples, nil
}

func render(path string, name string, data TemplateData) error {
	tmpl, err := template.ParseFS(templates, "templates/"+name)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
