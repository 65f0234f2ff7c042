package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	docx2tex "github.com/alnah/go-docx2tex"
	"github.com/alnah/go-docx2tex/internal/config"
	"github.com/alnah/go-docx2tex/internal/fileutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	LaTeX      latexInfo      `json:"latex"`
	Correction correctionInfo `json:"correction"`
	Resources  resourcesInfo  `json:"resources"`
	Config     configInfo     `json:"config"`
	System     systemInfo     `json:"system"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// latexInfo holds TeX engine detection results.
type latexInfo struct {
	Found   bool           `json:"found"`
	Engines []engineStatus `json:"engines"`
}

// engineStatus describes one configured engine.
type engineStatus struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// correctionInfo holds correction service detection results.
type correctionInfo struct {
	EnvVar string `json:"env_var"`
	KeySet bool   `json:"key_set"`
	Model  string `json:"model"`
}

// resourcesInfo holds resource directory detection results.
type resourcesInfo struct {
	Dir      string `json:"dir,omitempty"`
	Exists   bool   `json:"exists"`
	Embedded bool   `json:"embedded"` // true when the embedded defaults apply
}

// configInfo holds config file detection results.
type configInfo struct {
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		System: systemInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg := config.DefaultConfig()

	checkEngines(result, cfg, env)
	checkCorrection(result, cfg, env)
	checkResources(result, env)
	checkConfigFile(result)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkEngines probes every configured TeX engine on PATH.
func checkEngines(result *doctorResult, cfg *config.Config, env *Environment) {
	for _, name := range cfg.Compile.Engines {
		status := engineStatus{Name: name}
		if path, err := env.LookPath(name); err == nil {
			status.Found = true
			status.Path = path
			result.LaTeX.Found = true
		}
		result.LaTeX.Engines = append(result.LaTeX.Engines, status)
	}

	if !result.LaTeX.Found {
		result.Errors = append(result.Errors,
			"no TeX engine found on PATH; install TeX Live or MiKTeX, or convert with --tex-only")
	}
}

// checkCorrection reports whether the correction API key is available.
func checkCorrection(result *doctorResult, cfg *config.Config, env *Environment) {
	result.Correction = correctionInfo{
		EnvVar: cfg.Correction.APIKeyEnv,
		KeySet: env.Getenv(cfg.Correction.APIKeyEnv) != "",
		Model:  cfg.Correction.Model,
	}

	if !result.Correction.KeySet {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s is not set; conversions run without spelling correction", cfg.Correction.APIKeyEnv))
	}
}

// checkResources reports which resource files will be used.
func checkResources(result *doctorResult, env *Environment) {
	dir := env.Getenv("DOCX2TEX_RESOURCES")
	if dir == "" {
		if fallback, err := docx2tex.DefaultResourcesDir(); err == nil {
			dir = fallback
		}
	}

	result.Resources.Dir = dir
	result.Resources.Exists = dir != "" && fileutil.DirExists(dir)
	result.Resources.Embedded = !result.Resources.Exists
}

// checkConfigFile reports the first config file found on the search paths.
func checkConfigFile(result *doctorResult) {
	for _, path := range config.SearchPaths(config.DefaultConfigName) {
		if fileutil.FileExists(path) {
			result.Config.Found = true
			result.Config.Path = path
			return
		}
	}
}

// checkSystem verifies the temp directory is writable.
func checkSystem(result *doctorResult) {
	probe := filepath.Join(os.TempDir(), ".docx2tex_doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0o600); err == nil {
		result.System.TempWritable = true
		_ = os.Remove(probe)
	} else {
		result.Errors = append(result.Errors, "temp directory is not writable")
	}
}

// printDoctorResult writes a human-readable report.
func printDoctorResult(w io.Writer, result *doctorResult) {
	fmt.Fprintln(w, "docx2tex doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TeX engines:")
	for _, engine := range result.LaTeX.Engines {
		if engine.Found {
			fmt.Fprintf(w, "  [ok] %s (%s)\n", engine.Name, engine.Path)
		} else {
			fmt.Fprintf(w, "  [--] %s not found\n", engine.Name)
		}
	}

	fmt.Fprintln(w, "Correction:")
	if result.Correction.KeySet {
		fmt.Fprintf(w, "  [ok] %s is set (model %s)\n", result.Correction.EnvVar, result.Correction.Model)
	} else {
		fmt.Fprintf(w, "  [--] %s is not set\n", result.Correction.EnvVar)
	}

	fmt.Fprintln(w, "Resources:")
	if result.Resources.Exists {
		fmt.Fprintf(w, "  [ok] overrides from %s\n", result.Resources.Dir)
	} else {
		fmt.Fprintln(w, "  [ok] embedded defaults")
	}

	fmt.Fprintln(w, "Config:")
	if result.Config.Found {
		fmt.Fprintf(w, "  [ok] %s\n", result.Config.Path)
	} else {
		fmt.Fprintln(w, "  [--] no config file (defaults apply)")
	}

	fmt.Fprintln(w)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(w, "error: %s\n", errMsg)
	}

	switch result.Status {
	case "ready":
		fmt.Fprintln(w, "Status: ready")
	case "warnings":
		fmt.Fprintln(w, "Status: ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: not ready")
	}
}
