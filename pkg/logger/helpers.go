package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var sectionColor = color.New(color.FgCyan, color.Bold)

// Success logs a success message.
func Success(args ...interface{}) {
	Info("✓ " + fmt.Sprint(args...))
}

// Successf logs a formatted success message.
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Progress logs a progress message.
func Progress(args ...interface{}) {
	Info("… " + fmt.Sprint(args...))
}

// Progressf logs a formatted progress message.
func Progressf(format string, args ...interface{}) {
	Progress(fmt.Sprintf(format, args...))
}

// LogSection prints a visual section separator around a title.
func LogSection(title string) {
	line := strings.Repeat("=", 50)
	sectionColor.Println(line)
	sectionColor.Println(title)
	sectionColor.Println(line)
}
