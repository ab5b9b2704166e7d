// utils/safelog.go
// ============================================================================
// SAFE LOGGING - Masque les données personnelles en production
// ============================================================================
// Les fonctions de ce fichier passent par zerolog et masquent automatiquement
// les emails et identifiants quand l'application tourne en production.
// ============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ============================================================================
// CONFIGURATION
// ============================================================================

var (
	// IsProduction détermine si on est en mode production
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	logger = newLogger(os.Stdout, "info", "console")
)

// InitLogger reconfigure le logger global (niveau + format console|json).
func InitLogger(level, format string) {
	InitLoggerTo(os.Stdout, level, format)
}

// InitLoggerTo fait la même chose vers une autre sortie (CLI, tests).
func InitLoggerTo(w io.Writer, level, format string) {
	logger = newLogger(w, level, format)
}

// Logger expose le logger zerolog sous-jacent.
func Logger() *zerolog.Logger {
	return &logger
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	var zl zerolog.Logger
	if strings.EqualFold(format, "json") {
		zl = zerolog.New(w)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	return zl.Level(parseLevel(level)).With().
		Timestamp().
		Str("service", "giftfinder-api").
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ============================================================================
// PATTERNS DE MASQUAGE
// ============================================================================

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	uuidRegex  = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	// clés d'API dans les URLs (key=...)
	apiKeyRegex = regexp.MustCompile(`([?&]key=)[^&\s"]+`)
)

// ============================================================================
// FONCTIONS DE MASQUAGE
// ============================================================================

// MaskString masque les données sensibles dans une chaîne.
// Les clés d'API sont masquées quel que soit l'environnement.
func MaskString(input string) string {
	result := apiKeyRegex.ReplaceAllString(input, "${1}***")
	if !IsProduction {
		return result
	}

	result = emailRegex.ReplaceAllString(result, "***@***.***")
	result = uuidRegex.ReplaceAllStringFunc(result, shortenID)
	return result
}

// MaskID masque partiellement un ID (garde les 8 premiers caractères)
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	return shortenID(id)
}

// MaskEmail masque un email
func MaskEmail(email string) string {
	if !IsProduction {
		return email
	}
	return "***@***.***"
}

func shortenID(id string) string {
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// ============================================================================
// FONCTIONS DE LOGGING SÉCURISÉES
// ============================================================================

func SafeDebug(format string, args ...interface{}) {
	logger.Debug().Msg(MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	logger.Info().Msg(MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	logger.Warn().Msg(MaskString(fmt.Sprintf(format, args...)))
}

func SafeError(format string, args ...interface{}) {
	logger.Error().Msg(MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// FONCTIONS DE LOGGING MÉTIER
// ============================================================================

// LogSearchAction log une action de recherche sans exposer les IDs complets
func LogSearchAction(action string, searchID string, userID string) {
	logger.Info().
		Str("search_id", MaskID(searchID)).
		Str("user_id", MaskID(userID)).
		Msg("[GiftSearch] " + action)
}

// LogAPIRequest log une requête API (sans body)
func LogAPIRequest(method string, path string, userID string, statusCode int, duration time.Duration) {
	evt := logger.Info()
	if statusCode >= 500 {
		evt = logger.Error()
	} else if statusCode >= 400 {
		evt = logger.Warn()
	}
	evt.Str("method", method).
		Str("path", MaskString(path)).
		Str("user_id", MaskID(userID)).
		Int("status", statusCode).
		Dur("duration", duration).
		Msg("[API]")
}

// GetEnvMode retourne le mode d'environnement actuel
func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

// LogStartup log les informations de démarrage de l'application
func LogStartup(appName string, version string, port string) {
	logger.Info().
		Str("version", version).
		Str("mode", GetEnvMode()).
		Str("port", port).
		Msgf("🚀 %s starting...", appName)
	if IsProduction {
		logger.Info().Msg("⚠️  Production mode: sensitive data will be masked in logs")
	}
}
