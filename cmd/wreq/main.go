// Command wreq sends a single HTTP request built from command line flags
// and prints the response, decompressing compressed bodies and
// pretty-printing JSON ones when writing to a terminal.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-isatty"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"

	"github.com/cacexp/wrequest"
	"github.com/cacexp/wrequest/middlewares/decompress"
	"github.com/cacexp/wrequest/middlewares/requestlog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	var cli struct {
		Method   string        `short:"X" default:"GET" help:"Request method"`
		Header   []string      `short:"H" help:"Request header as 'Name: value', repeatable"`
		Param    []string      `short:"p" help:"Query parameter as 'key=value', repeatable"`
		Cookie   []string      `short:"c" help:"Request cookie as 'name=value', repeatable"`
		Data     string        `short:"d" help:"Request body"`
		JSON     string        `short:"j" help:"JSON request body, sets Content-Type: application/json" xor:"body"`
		Insecure bool          `short:"k" help:"Skip TLS certificate verification"`
		Proxy    string        `help:"Proxy URL (http:// or https://)"`
		Timeout  time.Duration `default:"30s" help:"Overall request timeout"`
		Verbose  bool          `short:"v" help:"Debug logging"`

		URL string `arg:"" required:"" help:"Target URL"`
	}

	cliCtx := kong.Parse(&cli, kong.UsageOnError())
	cliCtx.FatalIfErrorf(cliCtx.Error)

	if cli.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}

	req := wrequest.NewRequest(strings.ToUpper(cli.Method), cli.URL)
	for _, h := range cli.Header {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			gologger.Fatal().Msgf("bad header %q, want 'Name: value'", h)
		}
		req.SetHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	for _, p := range cli.Param {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			gologger.Fatal().Msgf("bad parameter %q, want 'key=value'", p)
		}
		req.SetParam(key, value)
	}
	for _, c := range cli.Cookie {
		name, value, ok := strings.Cut(c, "=")
		if !ok {
			gologger.Fatal().Msgf("bad cookie %q, want 'name=value'", c)
		}
		req.SetCookie(name, value)
	}
	if cli.JSON != "" {
		var v interface{}
		if err := json.Unmarshal([]byte(cli.JSON), &v); err != nil {
			gologger.Fatal().Msgf("bad JSON body: %v", err)
		}
		if err := req.SetJSON(v); err != nil {
			gologger.Fatal().Msgf("%v", err)
		}
	} else if cli.Data != "" {
		if err := req.SetBody(cli.Data); err != nil {
			gologger.Fatal().Msgf("%v", err)
		}
	}

	var opts []wrequest.Option
	if cli.Insecure {
		opts = append(opts, wrequest.WithTLSConfig(&tls.Config{InsecureSkipVerify: true}))
	}
	if cli.Proxy != "" {
		opts = append(opts, wrequest.WithProxy(cli.Proxy))
	}
	client := wrequest.New(opts...)
	client.Use(decompress.New(), requestlog.New())

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	resp, err := client.CtxDo(ctx, req)
	if err != nil {
		gologger.Fatal().Msgf("Request failed: %v", err)
	}
	defer resp.Close()

	tty := isatty.IsTerminal(os.Stdout.Fd())
	if tty {
		printHead(resp)
	}

	var body []byte
	if r, err := resp.Reader(); err == nil {
		if body, err = io.ReadAll(r); err != nil {
			gologger.Fatal().Msgf("Reading response body: %v", err)
		}
	}
	if ct, _ := resp.Header(wrequest.HeaderContentType); tty && strings.Contains(ct, "json") {
		var v interface{}
		if json.Unmarshal(body, &v) == nil {
			if pretty, err := json.MarshalIndent(v, "", "    "); err == nil {
				body = pretty
			}
		}
	}
	os.Stdout.Write(body)
	if tty && len(body) > 0 && body[len(body)-1] != '\n' {
		fmt.Println()
	}
}

func printHead(resp *wrequest.Response) {
	fmt.Printf("%s %s\n", resp.Proto(), resp.Status())
	if resp.ContentLength() >= 0 {
		fmt.Printf("Content-Length: %d\n", resp.ContentLength())
	}
	headers := resp.Headers()
	names := make([]string, 0, headers.Len())
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %s\n", name, headers[name])
	}
	for _, c := range resp.Cookies() {
		fmt.Printf("Set-Cookie: %s\n", c)
	}
	for _, a := range resp.AuthHeaders() {
		fmt.Printf("WWW-Authenticate: %s\n", a)
	}
	for _, a := range resp.ProxyAuthHeaders() {
		fmt.Printf("Proxy-Authenticate: %s\n", a)
	}
	fmt.Println()
}
