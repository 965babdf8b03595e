//
// Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
//
// See LICENSE.txt for license information
//

package webui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/analyzer"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/datalayer"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/hash"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/report"
	"github.com/XiaotaoChen/hvdProfileParser/internal/pkg/trace"
	"github.com/gomarkdown/markdown"
)

const (
	DefaultPort = 8080
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templatesFS, "templates/*.html"))

type IndexPageData struct {
	Title       string
	TraceFile   string
	Fingerprint string
	NumEvents   int
	Layers      []*datalayer.Layer
}

type ContentPageData struct {
	Title   string
	Content template.HTML
}

// Config represents the configuration of a webUI
type Config struct {
	wg  *sync.WaitGroup
	srv *http.Server

	Port      int
	TraceFile string
	Name      string

	AnalyzerOptions analyzer.Options
	ReportOptions   report.Options

	// The trace is analyzed once, when the webUI starts
	result      *analyzer.Result
	fingerprint string
}

// Init creates a configuration for the webui that can then be used to start/stop a webui
func Init() *Config {
	cfg := new(Config)
	cfg.wg = &sync.WaitGroup{}
	cfg.Port = DefaultPort
	cfg.TraceFile = trace.DefaultFile
	cfg.Name = "Timeline summary"
	cfg.AnalyzerOptions = analyzer.DefaultOptions()
	cfg.ReportOptions = report.DefaultOptions()
	return cfg
}

// Load parses and analyzes the trace
func (c *Config) Load() error {
	events, err := trace.LoadFile(c.TraceFile)
	if err != nil {
		return err
	}
	res, err := analyzer.Analyze(events, c.AnalyzerOptions)
	if err != nil {
		return err
	}
	c.fingerprint, err = hash.Short(c.TraceFile)
	if err != nil {
		return err
	}
	c.result = res
	log.Printf("%s: %d events, %d data layers", c.TraceFile, res.NumEvents, len(res.Layers))
	return nil
}

func (c *Config) renderContent(w http.ResponseWriter, title string, md []byte) {
	data := ContentPageData{
		Title:   title,
		Content: template.HTML(markdown.ToHTML(md, nil, nil)),
	}
	err := templates.ExecuteTemplate(w, "content.html", data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (c *Config) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := IndexPageData{
		Title:       c.Name,
		TraceFile:   c.TraceFile,
		Fingerprint: c.fingerprint,
		NumEvents:   c.result.NumEvents,
		Layers:      c.result.Layers,
	}
	err := templates.ExecuteTemplate(w, "index.html", data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// layerHandler is the http handler invoked when details about a specific data layer are requested
func (c *Config) layerHandler(w http.ResponseWriter, r *http.Request) {
	pid := r.URL.Query().Get("pid")
	if pid == "" {
		http.Error(w, "missing pid", http.StatusBadRequest)
		return
	}
	l, ok := c.result.Layer(trace.ProcessID(pid))
	if !ok {
		http.Error(w, fmt.Sprintf("unknown data layer %s", pid), http.StatusNotFound)
		return
	}
	md, err := report.MarkdownLayer(l, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	c.renderContent(w, l.Name, md)
}

func (c *Config) reportHandler(w http.ResponseWriter, r *http.Request) {
	md, err := report.Markdown(c.Name, c.result.Layers, c.ReportOptions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	c.renderContent(w, c.Name, md)
}

func (c *Config) stopHandler(w http.ResponseWriter, r *http.Request) {
	err := templates.ExecuteTemplate(w, "bye.html", nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
	if c.srv != nil {
		// Shutting down from the handler would wait for the handler itself
		go func() {
			err := c.srv.Shutdown(context.Background())
			if err != nil {
				log.Printf("unable to stop the web UI: %s", err)
			}
		}()
	}
}

// Handler returns the HTTP handler of the webUI; Load must have been called before
func (c *Config) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", c.indexHandler)
	mux.HandleFunc("/layer", c.layerHandler)
	mux.HandleFunc("/report", c.reportHandler)
	mux.HandleFunc("/stop", c.stopHandler)
	return mux
}

// Start analyzes the trace and instantiates a HTTP server. This is a non-blocking function,
// meaning the function returns after successfully initiating the WebUI. To wait for the
// termination of the webUI, please use Wait()
func (c *Config) Start() error {
	if c.result == nil {
		err := c.Load()
		if err != nil {
			return err
		}
	}

	c.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", c.Port),
		Handler: c.Handler(),
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := c.srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server failed: %s", err)
		}
		fmt.Println("HTTP server is now terminated")
	}()

	return nil
}

// Stop cleanly terminates a running webUI
func (c *Config) Stop() error {
	err := c.srv.Shutdown(context.TODO())
	if err != nil {
		return err
	}
	c.wg.Wait()
	return nil
}

// Wait makes the current process wait for the termination of the webUI
func (c *Config) Wait() {
	c.wg.Wait()
}

// RemoteStop asks the webUI listening on host:port to terminate
func RemoteStop(host string, port int) error {
	url := "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/stop"
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Close = true
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("unable to reach the web UI at %s: %w", url, err)
	}
	defer resp.Body.Close()

	_, err = io.Copy(io.Discard, resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", url, resp.Status)
	}
	log.Printf("web UI at %s stopped", url)
	return nil
}
