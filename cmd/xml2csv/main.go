// Command xml2csv converts hierarchical XML documents into flat CSV or
// SQLite tables, one row per element with its ancestor path as columns.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/xml2csv/core/sqlite"
	"github.com/FocuswithJustin/xml2csv/internal/clients"
	"github.com/FocuswithJustin/xml2csv/internal/clients/csvwriter"
	"github.com/FocuswithJustin/xml2csv/internal/clients/sqlitewriter"
	"github.com/FocuswithJustin/xml2csv/internal/clients/xmlreader"
	"github.com/FocuswithJustin/xml2csv/internal/config"
	"github.com/FocuswithJustin/xml2csv/internal/logging"
	"github.com/FocuswithJustin/xml2csv/internal/processor"
	"github.com/FocuswithJustin/xml2csv/internal/transform"

	// Register every read and write client.
	_ "github.com/FocuswithJustin/xml2csv/internal/clients/embedded"
)

const version = "0.1.0"

// CLI defines the command-line interface for xml2csv.
type CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text" enum:"text,json"`

	Run     RunCmd     `cmd:"" help:"Run the conversion described by a config file"`
	Convert ConvertCmd `cmd:"" help:"Convert one XML file without a config file"`
	Schema  SchemaCmd  `cmd:"" help:"Print the column schema an XML file flattens to"`
	Clients ClientsCmd `cmd:"" help:"List registered reader and writer types"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// Env carries what commands need from the process.
type Env struct {
	Ctx    context.Context
	Stdout io.Writer
}

// RunCmd builds the reader and writer named in a config file and runs them.
type RunCmd struct {
	Config string `name:"config" short:"c" help:"Config file (.yaml, .yml, .conf, .ini)" default:"configs/config.yaml" env:"XML2CSV_CONFIG" type:"path"`
	JSON   bool   `name:"json" help:"Print the run report as JSON"`
}

func (c *RunCmd) Run(env *Env) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	return execute(env, cfg.Processor.Reader, cfg.Processor.Writer, c.JSON)
}

// ConvertCmd converts a single file, choosing the writer from --format or
// the output extension.
type ConvertCmd struct {
	Input     string `arg:"" help:"XML input file (.xml, .xml.gz, .xml.xz)"`
	Out       string `name:"out" short:"o" help:"Output file" required:""`
	Format    string `name:"format" short:"f" help:"Output format (csv, sqlite); inferred from --out when empty"`
	Table     string `name:"table" help:"Table name for sqlite output"`
	Delimiter string `name:"delimiter" help:"Field delimiter for csv output"`
	JSON      bool   `name:"json" help:"Print the run report as JSON"`
}

func (c *ConvertCmd) Run(env *Env) error {
	reader := config.ClientConfig{config.TypeKey: xmlreader.Type, "path": c.Input}
	return execute(env, reader, c.writerConfig(), c.JSON)
}

func (c *ConvertCmd) writerConfig() config.ClientConfig {
	format := c.Format
	if format == "" {
		format = inferFormat(c.Out)
	}

	w := config.ClientConfig{config.TypeKey: format, "path": c.Out}
	switch format {
	case sqlitewriter.Type:
		if c.Table != "" {
			w["table"] = c.Table
		}
	case csvwriter.Type:
		if c.Delimiter != "" {
			w["delimiter"] = c.Delimiter
		}
	}
	return w
}

func inferFormat(path string) string {
	name := strings.ToLower(path)
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".xz"), ".gz")
	switch filepath.Ext(name) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlitewriter.Type
	default:
		return csvwriter.Type
	}
}

// SchemaCmd prints the columns and row count without writing anything.
type SchemaCmd struct {
	Input string `arg:"" help:"XML input file"`
}

func (c *SchemaCmd) Run(env *Env) error {
	reader, err := xmlreader.New(map[string]string{"path": c.Input})
	if err != nil {
		return err
	}
	doc, err := reader.Read(env.Ctx)
	if err != nil {
		return err
	}
	if doc == nil {
		fmt.Fprintln(env.Stdout, "No XML data found")
		return nil
	}

	ds, err := transform.New().Transform(doc)
	if err != nil {
		return err
	}
	for i, col := range ds.Schema {
		fmt.Fprintf(env.Stdout, "%2d  %s\n", i+1, col)
	}
	fmt.Fprintf(env.Stdout, "\n%d rows, %d subsection levels\n", len(ds.Rows), ds.Schema.Levels())
	return nil
}

// ClientsCmd lists the registered client types.
type ClientsCmd struct{}

func (c *ClientsCmd) Run(env *Env) error {
	fmt.Fprintln(env.Stdout, "Readers:")
	for _, t := range clients.Default.ReaderTypes() {
		fmt.Fprintf(env.Stdout, "  %s\n", t)
	}
	fmt.Fprintln(env.Stdout, "Writers:")
	for _, t := range clients.Default.WriterTypes() {
		fmt.Fprintf(env.Stdout, "  %s\n", t)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(env *Env) error {
	fmt.Fprintf(env.Stdout, "xml2csv version %s (sqlite driver: %s)\n", version, sqlite.DriverType())
	return nil
}

func execute(env *Env, readerCfg, writerCfg config.ClientConfig, asJSON bool) error {
	reader, err := clients.Default.CreateReader(readerCfg)
	if err != nil {
		return err
	}
	writer, err := clients.Default.CreateWriter(writerCfg)
	if err != nil {
		return err
	}

	report, err := processor.New(reader, writer).Start(env.Ctx, transform.New())
	if err != nil {
		return err
	}
	return printReport(env.Stdout, report, asJSON)
}

func printReport(w io.Writer, r *processor.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	if r.Skipped {
		fmt.Fprintln(w, "No XML data found")
		return nil
	}
	fmt.Fprintf(w, "Wrote %d rows with %d subsection levels\n", r.Rows, r.Levels)
	if r.Checksum != nil {
		fmt.Fprintf(w, "  sha256: %s\n", r.Checksum.SHA256)
		fmt.Fprintf(w, "  blake3: %s\n", r.Checksum.BLAKE3)
	}
	return nil
}

func configureLogging(cli *CLI) error {
	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("xml2csv"),
		kong.Description("Flatten hierarchical XML into CSV or SQLite rows"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	ctx.FatalIfErrorf(configureLogging(&cli))

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := ctx.Run(&Env{Ctx: runCtx, Stdout: os.Stdout})
	if err != nil {
		logging.Error("xml2csv failed", "command", ctx.Command(), "error", err)
	}
	ctx.FatalIfErrorf(err)
}
