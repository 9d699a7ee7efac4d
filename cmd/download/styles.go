package main

import (
	"github.com/charmbracelet/lipgloss"
)

// Style definitions.
var (
	// TitleStyle for section headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for hints and usage examples.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for fatal error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	// TickerStyle for canonical tickers in listings.
	TickerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)
