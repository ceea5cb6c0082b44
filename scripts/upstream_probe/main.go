// Command upstream_probe logs into the backing REST API and walks a
// list of endpoints with the captured session cookie. It is the
// pre-deploy check that the upstream still serves every route the
// console consumes.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type config struct {
	Targets []target `json:"targets"`
}

type probe struct {
	Target   target
	Status   int
	Duration time.Duration
	Error    error
}

func main() {
	var (
		baseURL     string
		email       string
		password    string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&baseURL, "base", "http://localhost:3000", "Upstream API base URL")
	flag.StringVar(&email, "email", os.Getenv("PROBE_EMAIL"), "Admin email for login")
	flag.StringVar(&password, "password", os.Getenv("PROBE_PASSWORD"), "Admin password for login")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "upstream_probe", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	base := strings.TrimRight(baseURL, "/")

	cookie, err := login(client, base, email, password)
	if err != nil {
		log.Fatalf("upstream login failed: %v", err)
	}

	var failing int
	probes := make([]probe, 0, len(targets))
	for _, t := range targets {
		p := probeTarget(client, base, cookie, t)
		if t.Critical && (p.Error != nil || p.Status >= 400) {
			failing++
		}
		probes = append(probes, p)
	}

	printReport(probes)

	fmt.Printf("Critical failures: %d\n", failing)
	if failing > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func login(client *http.Client, base, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	resp, err := client.Post(base+"/api/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	pairs := make([]string, 0, 2)
	for _, ck := range resp.Cookies() {
		if ck.Name != "" {
			pairs = append(pairs, ck.Name+"="+ck.Value)
		}
	}
	if len(pairs) == 0 {
		return "", fmt.Errorf("login set no session cookie")
	}
	return strings.Join(pairs, "; "), nil
}

func probeTarget(client *http.Client, base, cookie string, tgt target) probe {
	p := probe{Target: tgt}

	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, base+path, nil)
	if err != nil {
		p.Error = err
		return p
	}
	req.Header.Set("Cookie", cookie)

	start := time.Now()
	resp, err := client.Do(req)
	p.Duration = time.Since(start)
	if err != nil {
		p.Error = err
		return p
	}
	defer resp.Body.Close()

	p.Status = resp.StatusCode
	return p
}

func printReport(probes []probe) {
	fmt.Println("Upstream Probe Report")
	fmt.Println("=====================")
	for _, p := range probes {
		status := "OK"
		if p.Error != nil {
			status = "ERROR"
		} else if p.Status >= 400 {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", status, p.Target.Method, p.Target.Path)
		if p.Error != nil {
			fmt.Printf("  Error: %v\n", p.Error)
			continue
		}
		fmt.Printf("  Status: %d (%s) | Critical: %t\n", p.Status, p.Duration, p.Target.Critical)
	}
}
