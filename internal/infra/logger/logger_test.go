package logger

import (
	"testing"

	"team_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.AppConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{"debug text", config.AppConfig{LogLevel: "debug", Environment: "development"}, logrus.DebugLevel, false},
		{"production json", config.AppConfig{LogLevel: "warn", Environment: "production"}, logrus.WarnLevel, true},
		{"invalid level", config.AppConfig{LogLevel: "loud", Environment: "staging"}, logrus.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(&tt.cfg)
			if Log.GetLevel() != tt.wantLevel {
				t.Errorf("level = %s, want %s", Log.GetLevel(), tt.wantLevel)
			}
			_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
			if isJSON != tt.wantJSON {
				t.Errorf("JSON formatter = %v, want %v", isJSON, tt.wantJSON)
			}
		})
	}
}

func TestForTagsComponent(t *testing.T) {
	e := For("scheduler")
	if e.Data["component"] != "scheduler" {
		t.Errorf("component = %v, want scheduler", e.Data["component"])
	}
}

func TestFormatterFor(t *testing.T) {
	for env, wantJSON := range map[string]bool{
		"production":  true,
		"staging":     true,
		"development": false,
		"":            false,
	} {
		_, isJSON := formatterFor(env).(*logrus.JSONFormatter)
		if isJSON != wantJSON {
			t.Errorf("formatterFor(%q) JSON = %v, want %v", env, isJSON, wantJSON)
		}
	}
}
