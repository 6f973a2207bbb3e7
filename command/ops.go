package command

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-betriebsanweisung/instruction"
	gcmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// BatchFile is the on-disk shape of a batch of records.
type BatchFile struct {
	Records []instruction.Record `json:"anweisungen" yaml:"anweisungen" toml:"anweisungen"`
}

// BatchLoader loads records from a source.
type BatchLoader func(ctx context.Context) ([]instruction.Record, error)

// BatchSink receives each rendered document.
type BatchSink func(ctx context.Context, rendered instruction.Rendered) error

// BatchLimits bounds batch execution throughput.
type BatchLimits struct {
	MaxRecords  int
	MinInterval time.Duration
}

// BatchCommand renders many records in one run.
type BatchCommand struct {
	handler   *RenderInstructionHandler
	loader    BatchLoader
	sink      BatchSink
	cliConfig gcmd.CLIConfig
	limits    BatchLimits
	sleep     func(time.Duration)
}

// BatchOption customizes batch commands.
type BatchOption func(*BatchCommand)

// WithBatchCLIConfig overrides CLI configuration.
func WithBatchCLIConfig(cfg gcmd.CLIConfig) BatchOption {
	return func(cmd *BatchCommand) {
		cmd.cliConfig = cfg
	}
}

// WithBatchLimits overrides batch execution limits.
func WithBatchLimits(limits BatchLimits) BatchOption {
	return func(cmd *BatchCommand) {
		cmd.limits = limits
	}
}

// WithBatchLoader sets the loader used when no file is given.
func WithBatchLoader(loader BatchLoader) BatchOption {
	return func(cmd *BatchCommand) {
		cmd.loader = loader
	}
}

// NewRenderBatchCommand creates a batch render command.
func NewRenderBatchCommand(handler *RenderInstructionHandler, sink BatchSink, opts ...BatchOption) *BatchCommand {
	cmd := &BatchCommand{
		handler: handler,
		sink:    sink,
		cliConfig: gcmd.CLIConfig{
			Path:        []string{"render-batch"},
			Description: "Render a batch of safety instructions",
			Group:       "betriebsanweisung",
		},
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cmd)
		}
	}
	return cmd
}

// Run renders every record from the batch file at from, or from the
// configured loader when from is empty. It returns the number of rendered
// documents.
func (c *BatchCommand) Run(ctx context.Context, from string) (int, error) {
	if c == nil || c.handler == nil {
		return 0, errors.New("batch command is nil", errors.CategoryInternal).
			WithTextCode("BATCH_CMD_NIL")
	}
	if c.sink == nil {
		return 0, errors.New("batch sink is required", errors.CategoryValidation).
			WithTextCode("SINK_REQUIRED")
	}

	records, err := c.loadRecords(ctx, from)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, record := range records {
		if c.limits.MaxRecords > 0 && count >= c.limits.MaxRecords {
			break
		}
		var rendered instruction.Rendered
		if err := c.handler.Execute(ctx, RenderInstruction{Record: record, Result: &rendered}); err != nil {
			return count, err
		}
		if err := c.sink(ctx, rendered); err != nil {
			return count, err
		}
		count++
		if c.limits.MinInterval > 0 && c.sleep != nil {
			c.sleep(c.limits.MinInterval)
		}
	}
	return count, nil
}

// CLIHandler exposes the CLI handler.
func (c *BatchCommand) CLIHandler() any {
	return &batchCLI{cmd: c}
}

// CLIOptions returns CLI configuration.
func (c *BatchCommand) CLIOptions() gcmd.CLIConfig {
	if c == nil {
		return gcmd.CLIConfig{}
	}
	return c.cliConfig
}

func (c *BatchCommand) loadRecords(ctx context.Context, from string) ([]instruction.Record, error) {
	if strings.TrimSpace(from) != "" {
		return LoadBatchFile(from)
	}
	if c.loader == nil {
		return nil, errors.New("batch loader not configured", errors.CategoryValidation).
			WithTextCode("LOADER_REQUIRED")
	}
	return c.loader(ctx)
}

type batchCLI struct {
	cmd  *BatchCommand
	From string `kong:"name='from',help='Path to a JSON, YAML or TOML batch file'"`
}

func (c *batchCLI) Run() error {
	if c == nil || c.cmd == nil {
		return errors.New("batch command is required", errors.CategoryInternal).
			WithTextCode("BATCH_CMD_NIL")
	}
	_, err := c.cmd.Run(context.Background(), c.From)
	return err
}

// LoadBatchFile reads a batch file. The encoding follows the extension.
func LoadBatchFile(path string) ([]instruction.Record, error) {
	format, err := instruction.RecordFormatFromPath(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryExternal, "read batch file failed").
			WithTextCode("BATCH_FILE_READ")
	}

	var batch BatchFile
	switch format {
	case instruction.RecordJSON:
		err = json.Unmarshal(content, &batch)
	case instruction.RecordYAML:
		err = yaml.Unmarshal(content, &batch)
	case instruction.RecordTOML:
		err = toml.Unmarshal(content, &batch)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "batch file invalid").
			WithTextCode("BATCH_FILE_INVALID")
	}
	return batch.Records, nil
}

// DirectorySink writes each rendered document into dir under its filename.
// Documents rendered within the same second share a timestamped filename,
// so the document ID is appended to keep them apart.
func DirectorySink(dir string) BatchSink {
	return func(ctx context.Context, rendered instruction.Rendered) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, errors.CategoryExternal, "create output directory failed").
				WithTextCode("OUTPUT_DIR")
		}
		name := rendered.Filename
		if rendered.ID != "" {
			ext := filepath.Ext(name)
			name = strings.TrimSuffix(name, ext) + "_" + rendered.ID + ext
		}
		if err := os.WriteFile(filepath.Join(dir, name), rendered.Bytes, 0o644); err != nil {
			return errors.Wrap(err, errors.CategoryExternal, "write document failed").
				WithTextCode("OUTPUT_WRITE")
		}
		return nil
	}
}
