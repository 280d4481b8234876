// Package services implements the driving ports.
//
// CorpusService loads articles and keeps them by ID, RankService scores their
// sentences with internal/ranking, and SettingsService maps the config store
// onto typed settings.
package services
