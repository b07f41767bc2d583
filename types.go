package spotshell

import (
	"github.com/spotshell/spotshell/internal/classify"
	"github.com/spotshell/spotshell/internal/config"
	"github.com/spotshell/spotshell/internal/llm"
	"github.com/spotshell/spotshell/internal/presets"
)

// EngineConfig configures the spotshell engine.
type EngineConfig struct {
	DBPath     string      // SQLite path for persisted configuration; empty means in-memory only
	PresetsURL string      // remote preset repository base URL
	LLM        *llm.Config // classification backend settings; nil uses defaults
}

// Domain types re-exported so embedding applications only import this
// package.
type (
	Configuration        = config.Configuration
	StandardMenu         = config.StandardMenu
	CustomMenu           = config.CustomMenu
	ContentSelection     = config.ContentSelection
	HomePageConfig       = config.HomePageConfig
	AppConfig            = config.AppConfig
	FullAppConfig        = config.FullAppConfig
	StylingConfig        = config.StylingConfig
	RegionStyle          = config.RegionStyle
	EmbeddedContentStyle = config.EmbeddedContentStyle
	DoubleClickConfig    = config.DoubleClickConfig
	UserConfig           = config.UserConfig
	User                 = config.User
	UserAccess           = config.UserAccess
	HiddenActionsConfig  = config.HiddenActionsConfig

	UpdateSinks   = config.UpdateSinks
	ApplyReport   = config.ApplyReport
	SaveReport    = config.SaveReport
	FieldFailure  = config.FieldFailure
	StorageHealth = config.StorageHealth
	LoadError     = config.LoadError

	ModelDescriptor        = classify.ModelDescriptor
	QuestionClassification = classify.QuestionClassification

	PresetFile = presets.PresetFile

	LoadErrorKind = config.LoadErrorKind
)

// Load failure kinds.
const (
	MissingField   = config.MissingField
	InvalidShape   = config.InvalidShape
	ParseFailure   = config.ParseFailure
	NetworkFailure = config.NetworkFailure
)

// Defaults returns the built-in Configuration.
func Defaults() Configuration { return config.Defaults() }
