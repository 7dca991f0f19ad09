package version

import (
	"errors"
	"fmt"
	"time"
)

// Заполняются через -ldflags "-X async4x-server/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки - число дней от этой даты
var buildEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

var errNoBuildDate = errors.New("build date not set")

// VersionInfo - метаданные сборки, отдаются на /version
type VersionInfo struct {
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID переводит BuildDate в номер дня от эпохи
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, errNoBuildDate
	}
	day, err := time.ParseInLocation(time.DateOnly, BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("build date %q: %w", BuildDate, err)
	}
	if day.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s precedes %s", BuildDate, buildEpoch.Format(time.DateOnly))
	}
	return int(day.Sub(buildEpoch) / (24 * time.Hour)), nil
}

// Info никогда не падает: ошибка расчета кладется в поле Error
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    orDefault(BuildCommit, "unknown"),
		Branch:    orDefault(BuildBranch, "unknown"),
		CI:        orDefault(BuildCI, "local"),
	}
	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID, info.Calculated = id, true
	return info
}

// String - строка для стартового лога сервера
func String() string {
	info := Info()
	if !info.Calculated {
		return "Async 4X build unknown (" + info.Error + ")"
	}
	return fmt.Sprintf("Async 4X build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.BuildID, info.BuildDate, info.Commit, info.Branch, info.CI)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
