package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/zeebo/blake3"

	"github.com/shautvast/szpakowski-lang/pkg/driver"
)

const (
	defaultServeAddr      = ":8080"
	defaultServeStepLimit = 1_000_000
	maxServeBodySize      = 1 << 20
)

func runServe(args []string) int {
	opts, err := parseOptions("szpakowski serve", args, "c:a:")
	if err != nil {
		reportError("szpakowski serve: %v", err)
		return 1
	}
	cfg, err := loadConfig(opts.config)
	if err != nil {
		reportError("szpakowski serve: %v", err)
		return 1
	}
	addr := opts.addr
	if addr == "" {
		addr = defaultServeAddr
	}
	server := &fasthttp.Server{
		Handler:            newServeHandler(cfg),
		Name:               cliToolVersion,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxRequestBodySize: maxServeBodySize,
	}
	log.Printf("Starting HTTP server on %q", addr)
	if err := server.ListenAndServe(addr); err != nil {
		reportError("szpakowski serve: %v", err)
		return 1
	}
	return 0
}

// newServeHandler renders POSTed programs with base as the default
// configuration. Program errors answer 422 with the diagnostic text.
func newServeHandler(base *driver.Config) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		switch string(ctx.Path()) {
		case "/healthz":
			ctx.SetContentType("text/plain; charset=utf-8")
			ctx.SetBodyString("ok\n")
		case "/render":
			if !ctx.IsPost() {
				ctx.Error("method not allowed", fasthttp.StatusMethodNotAllowed)
				break
			}
			handleRender(ctx, base)
		default:
			ctx.Error("not found", fasthttp.StatusNotFound)
		}
		log.Printf("%s %s %d %s", ctx.Method(), ctx.Path(), ctx.Response.StatusCode(), time.Since(start))
	}
}

func handleRender(ctx *fasthttp.RequestCtx, base *driver.Config) {
	cfg, err := requestConfig(ctx.QueryArgs(), base)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusBadRequest)
		return
	}
	source := string(ctx.PostBody())
	format := cfg.Output.ResolveFormat()

	// Output depends on random() unless the seed is fixed.
	var etag string
	if cfg.Seed != 0 {
		etag = renderETag(cfg, source)
		if string(ctx.Request.Header.Peek("If-None-Match")) == etag {
			ctx.SetStatusCode(fasthttp.StatusNotModified)
			return
		}
	}

	canvas, err := driver.Render(cfg, &driver.Source{Name: "request", Text: source}, io.Discard)
	if err != nil {
		if driver.IsProgramError(err) {
			ctx.Error(driver.DescribeError("request", err), fasthttp.StatusUnprocessableEntity)
			return
		}
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := canvas.Encode(&buf); err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	if format == driver.FormatSVG {
		ctx.SetContentType("image/svg+xml")
	} else {
		ctx.SetContentType("image/png")
	}
	if etag != "" {
		ctx.Response.Header.Set("ETag", etag)
	}
	ctx.SetBody(buf.Bytes())
}

// requestConfig overlays the format, width, height and unit query
// arguments on a copy of base.
func requestConfig(query *fasthttp.Args, base *driver.Config) (*driver.Config, error) {
	cfg := *base
	cfg.Output.Path = ""
	if cfg.Output.Format == "" {
		cfg.Output.Format = driver.FormatPNG
	}
	if cfg.StepLimit == 0 {
		cfg.StepLimit = defaultServeStepLimit
	}
	if v := query.Peek("format"); len(v) > 0 {
		cfg.Output.Format = driver.Format(v)
	}
	for _, dim := range []struct {
		name string
		dst  *int
	}{{"width", &cfg.Width}, {"height", &cfg.Height}} {
		if !query.Has(dim.name) {
			continue
		}
		n, err := query.GetUint(dim.name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dim.name, err)
		}
		*dim.dst = n
	}
	if v := query.Peek("unit"); len(v) > 0 {
		unit, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return nil, fmt.Errorf("unit: %w", err)
		}
		cfg.Unit = unit
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func renderETag(cfg *driver.Config, source string) string {
	h := blake3.New()
	h.WriteString(fmt.Sprintf("%s|%d|%d|%g|%g|%g|%g|%d|%s|%s|%+v\n",
		cfg.Output.Format, cfg.Width, cfg.Height, cfg.Unit, cfg.X, cfg.Y, cfg.Angle,
		cfg.Seed, cfg.Scoping, cfg.MovingPillarsNegateOn, cfg.Output.Style))
	h.WriteString(source)
	return `"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`
}
