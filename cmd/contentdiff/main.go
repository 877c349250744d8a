package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cirrusops/contentdiff/internal/config"
	"github.com/cirrusops/contentdiff/internal/datastore"
	"github.com/cirrusops/contentdiff/internal/differ"
	"github.com/cirrusops/contentdiff/internal/logger"
	"github.com/cirrusops/contentdiff/internal/models"
	"github.com/cirrusops/contentdiff/internal/reporter"
	"github.com/cirrusops/contentdiff/internal/versioning"
	"github.com/rs/zerolog"
)

func main() {
	// Flags
	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for --globalconfig")

	modeFlag := flag.String("mode", "", "Mode to run the tool: diff, add, list or delete")
	modeFlagAlias := flag.String("m", "", "Alias for --mode")

	oldFile := flag.String("old-file", "", "Path to the old text file (diff mode, file pair)")
	newFile := flag.String("new-file", "", "Path to the new text file (diff mode, file pair)")

	contentID := flag.String("content-id", "", "Content identifier for stored-version operations")
	baseID := flag.String("base", "", "Version id of the base side (diff mode; defaults to second-latest)")
	targetID := flag.String("target", "", "Version id of the target side (diff mode; defaults to latest)")

	addFile := flag.String("add-file", "", "Path to a text file to store as a new version (add mode)")
	tone := flag.String("tone", "", "Tone label to attach to the new version (add mode)")
	parentID := flag.String("parent", "", "Parent version id of the new version (add mode)")

	format := flag.String("format", "text", "Diff output format: text or html")
	flag.Parse()

	// Consolidate alias flags
	if *globalConfigFile == "" && *globalConfigFileAlias != "" {
		*globalConfigFile = *globalConfigFileAlias
	}
	if *modeFlag == "" && *modeFlagAlias != "" {
		*modeFlag = *modeFlagAlias
	}

	if *modeFlag == "" {
		log.Fatalln("[FATAL] --mode argument is required (diff, add, list or delete)")
	}

	gCfg, err := config.LoadGlobalConfig(*globalConfigFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load global config using path '%s': %v", *globalConfigFile, err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Fatal().Err(err).Msg("Configuration validation failed")
	}

	ctx := context.Background()

	switch *modeFlag {
	case "diff":
		runDiff(ctx, gCfg, zLogger, diffOptions{
			oldFile:   *oldFile,
			newFile:   *newFile,
			contentID: *contentID,
			baseID:    *baseID,
			targetID:  *targetID,
			format:    *format,
		})
	case "add":
		runAdd(ctx, gCfg, zLogger, *contentID, *addFile, *tone, *parentID)
	case "list":
		runList(ctx, gCfg, zLogger, *contentID)
	case "delete":
		runDelete(ctx, gCfg, zLogger, *contentID)
	default:
		zLogger.Fatal().Str("mode", *modeFlag).Msg("Unknown mode, expected diff, add, list or delete")
	}
}

type diffOptions struct {
	oldFile   string
	newFile   string
	contentID string
	baseID    string
	targetID  string
	format    string
}

func runDiff(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger, opts diffOptions) {
	var oldText, newText string
	meta := reporter.ReportMetadata{ContentID: opts.contentID}

	switch {
	case opts.oldFile != "" && opts.newFile != "":
		oldText = readFileOrDie(zLogger, opts.oldFile)
		newText = readFileOrDie(zLogger, opts.newFile)
		meta.BaseLabel = opts.oldFile
		meta.TargetLabel = opts.newFile
	case opts.contentID != "":
		store := openStoreOrDie(gCfg, zLogger)
		defer store.Close()

		selector, err := versioning.NewSelectorBuilder().WithLogger(zLogger).Build()
		if err != nil {
			zLogger.Fatal().Err(err).Msg("Failed to build version selector")
		}
		pair, err := selector.ResolveContent(ctx, store, opts.contentID, versioning.Selection{
			BaseID:   opts.baseID,
			TargetID: opts.targetID,
		})
		if err != nil {
			zLogger.Fatal().Err(err).Str("content_id", opts.contentID).Msg("Failed to resolve version pair")
		}
		oldText = pair.Base.Content
		newText = pair.Target.Content
		meta.BaseLabel = fmt.Sprintf("v%d", pair.Base.Version)
		meta.TargetLabel = fmt.Sprintf("v%d", pair.Target.Version)
	default:
		zLogger.Fatal().Msg("diff mode needs either --old-file and --new-file, or --content-id")
	}

	contentDiffer, err := differ.NewContentDifferBuilder().
		WithDiffSettings(gCfg.DiffConfig).
		Build()
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Failed to build content differ")
	}

	result := contentDiffer.ComputeDiff(oldText, newText)

	switch opts.format {
	case "html":
		htmlReporter, err := reporter.NewHTMLReporter(zLogger, gCfg.ReporterConfig)
		if err != nil {
			zLogger.Fatal().Err(err).Msg("Failed to build HTML reporter")
		}
		path, err := htmlReporter.WriteReport(result, meta)
		if err != nil {
			zLogger.Fatal().Err(err).Msg("Failed to write HTML diff report")
		}
		fmt.Println(path)
	case "text":
		fmt.Println(reporter.FormatInline(result))
	default:
		zLogger.Fatal().Str("format", opts.format).Msg("Unknown format, expected text or html")
	}
}

func runAdd(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger, contentID, addFile, tone, parentID string) {
	if contentID == "" || addFile == "" {
		zLogger.Fatal().Msg("add mode needs --content-id and --add-file")
	}

	store := openStoreOrDie(gCfg, zLogger)
	defer store.Close()

	saved, err := store.SaveVersion(ctx, models.ContentVersion{
		ContentID: contentID,
		ParentID:  parentID,
		Tone:      tone,
		Content:   readFileOrDie(zLogger, addFile),
	})
	if err != nil {
		zLogger.Fatal().Err(err).Str("content_id", contentID).Msg("Failed to save content version")
	}
	fmt.Printf("%s v%d\n", saved.ID, saved.Version)
}

func runList(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger, contentID string) {
	if contentID == "" {
		zLogger.Fatal().Msg("list mode needs --content-id")
	}

	store := openStoreOrDie(gCfg, zLogger)
	defer store.Close()

	versions, err := store.ListVersions(ctx, contentID)
	if err != nil {
		zLogger.Fatal().Err(err).Str("content_id", contentID).Msg("Failed to list content versions")
	}
	for _, v := range versions {
		tone := v.Tone
		if tone == "" {
			tone = "-"
		}
		fmt.Printf("v%-4d %s  %s  tone=%s\n", v.Version, v.ID, v.CreatedAt.Format("2006-01-02 15:04:05"), tone)
	}
}

func runDelete(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger, contentID string) {
	if contentID == "" {
		zLogger.Fatal().Msg("delete mode needs --content-id")
	}

	store := openStoreOrDie(gCfg, zLogger)
	defer store.Close()

	deleted, err := store.DeleteVersions(ctx, contentID)
	if err != nil {
		zLogger.Fatal().Err(err).Str("content_id", contentID).Msg("Failed to delete content versions")
	}
	fmt.Printf("deleted %d version(s)\n", deleted)
}

func openStoreOrDie(gCfg *config.GlobalConfig, zLogger zerolog.Logger) *datastore.VersionStore {
	store, err := datastore.NewVersionStore(gCfg.StorageConfig.DatabasePath, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Str("db_path", gCfg.StorageConfig.DatabasePath).Msg("Failed to open version store")
	}
	return store
}

func readFileOrDie(zLogger zerolog.Logger, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		zLogger.Fatal().Err(err).Str("path", path).Msg("Failed to read input file")
	}
	return string(data)
}
