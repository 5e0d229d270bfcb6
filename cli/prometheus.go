// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//nolint:gosec
package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/browser"
	"gopkg.in/yaml.v2"

	"github.com/lpvault/lpvault/utils"
)

const (
	fsModeWrite      = 0o600
	prometheusBinary = "/tmp/prometheus"
)

type PrometheusStaticConfig struct {
	Targets []string `yaml:"targets"`
}

type PrometheusScrapeConfig struct {
	JobName       string                    `yaml:"job_name"`
	StaticConfigs []*PrometheusStaticConfig `yaml:"static_configs"`
	MetricsPath   string                    `yaml:"metrics_path"`
}

type PrometheusGlobalConfig struct {
	ScrapeInterval     string `yaml:"scrape_interval"`
	EvaluationInterval string `yaml:"evaluation_interval"`
}

type PrometheusConfig struct {
	Global        PrometheusGlobalConfig    `yaml:"global"`
	ScrapeConfigs []*PrometheusScrapeConfig `yaml:"scrape_configs"`
}

func writeScrapeConfig(path string, target string) error {
	config := &PrometheusConfig{
		Global: PrometheusGlobalConfig{
			ScrapeInterval:     "1s",
			EvaluationInterval: "1s",
		},
		ScrapeConfigs: []*PrometheusScrapeConfig{{
			JobName:       "prometheus",
			StaticConfigs: []*PrometheusStaticConfig{{Targets: []string{target}}},
			MetricsPath:   "/metrics",
		}},
	}
	yamlData, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, yamlData, fsModeWrite)
}

// dashboardURL encodes the graph params by hand because prometheus skips
// panels that are not numerically sorted and url.Values only sorts
// lexicographically.
func dashboardURL(baseURI string, panels []string) string {
	link := baseURI + "/graph"
	for i, panel := range panels {
		sep := "&"
		if i == 0 {
			sep = "?"
		}
		link += fmt.Sprintf("%sg%d.expr=%s&g%d.tab=0&g%d.step_input=1&g%d.range_input=5m", sep, i, url.QueryEscape(panel), i, i, i)
	}
	return link
}

// GeneratePrometheus writes a scrape config for a selected endpoint and
// assembles a dashboard link from [getPanels].
func (h *Handler) GeneratePrometheus(baseURI string, openBrowser bool, startPrometheus bool, prometheusFile string, prometheusData string, getPanels func() []string) error {
	uri, err := h.PromptEndpoint("select endpoint")
	if err != nil {
		return err
	}
	if err := h.CloseDatabase(); err != nil {
		return err
	}
	host, err := utils.GetHost(uri)
	if err != nil {
		return err
	}
	port, err := utils.GetPort(uri)
	if err != nil {
		return err
	}
	if err := writeScrapeConfig(prometheusFile, fmt.Sprintf("%s:%s", host, port)); err != nil {
		return err
	}
	dashboard := dashboardURL(baseURI, getPanels())

	if !startPrometheus {
		if !openBrowser {
			utils.Outf("{{orange}}pre-built dashboard:{{/}} %s\n", dashboard)

			// Emit command to run prometheus
			utils.Outf("{{green}}prometheus cmd:{{/}} %s --config.file=%s --storage.tsdb.path=%s\n", prometheusBinary, prometheusFile, prometheusData)
			return nil
		}
		return browser.OpenURL(dashboard)
	}

	// Start prometheus and open browser
	//
	// Attempting to exit from the terminal will gracefully
	// stop this process.
	cmd := exec.CommandContext(context.Background(), prometheusBinary, "--config.file="+prometheusFile, "--storage.tsdb.path="+prometheusData)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	exited := make(chan error, 1)
	go func() {
		select {
		case <-exited:
		case <-time.After(5 * time.Second):
			if !openBrowser {
				utils.Outf("{{orange}}pre-built dashboard:{{/}} %s\n", dashboard)
				return
			}
			utils.Outf("{{cyan}}opening dashboard{{/}}\n")
			if err := browser.OpenURL(dashboard); err != nil {
				utils.Outf("{{red}}unable to open dashboard:{{/}} %s\n", err.Error())
			}
		}
	}()

	utils.Outf("{{cyan}}starting prometheus (%s) in background{{/}}\n", prometheusBinary)
	if err := cmd.Run(); err != nil {
		exited <- err
		utils.Outf("{{orange}}prometheus exited with error:{{/}} %v\n", err)
		utils.Outf("{{yellow}}install a binary from https://prometheus.io/download and place it at %s{{/}}\n", prometheusBinary)
		return err
	}
	utils.Outf("{{cyan}}prometheus exited{{/}}\n")
	return nil
}
