package app

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	settingsdto "pomo/internal/modules/settings/dto"
	"pomo/internal/ui/theme"
)

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "mode":
		if len(parts) != 2 {
			m.status = "usage: mode <work|short|long>"
			return m, nil
		}
		return m, m.setModeCmd(parts[1])

	case "durations":
		if len(parts) != 5 {
			m.status = "usage: durations <work> <short> <long> <interval>"
			return m, nil
		}
		values := make([]int, 4)
		for i, raw := range parts[1:] {
			n, err := strconv.Atoi(raw)
			if err != nil {
				m.status = fmt.Sprintf("invalid number %q", raw)
				return m, nil
			}
			values[i] = n
		}
		return m, m.saveSettingsCmd(settingsdto.UpdateInput{
			WorkMinutes:       &values[0],
			ShortBreakMinutes: &values[1],
			LongBreakMinutes:  &values[2],
			LongBreakInterval: &values[3],
		}, "durations saved")

	case "volume":
		if len(parts) != 2 {
			m.status = "usage: volume <0-100>"
			return m, nil
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid volume"
			return m, nil
		}
		return m, m.volumeCmd(n)

	case "music":
		if len(parts) < 3 {
			m.status = "usage: music <focus|break> <local|video> [reference]"
			return m, nil
		}
		kind := parts[2]
		reference := ""
		if len(parts) > 3 {
			reference = strings.Join(parts[3:], " ")
		}
		music := &settingsdto.MusicInput{Kind: &kind, Reference: &reference}
		update := settingsdto.UpdateInput{}
		switch parts[1] {
		case "focus":
			update.FocusMusic = music
		case "break":
			update.BreakMusic = music
		default:
			m.status = "music class must be focus or break"
			return m, nil
		}
		return m, m.saveSettingsCmd(update, parts[1]+" music saved")

	case "theme":
		if len(parts) != 2 {
			m.status = "themes: " + strings.Join(theme.Names(), ", ")
			return m, nil
		}
		name := parts[1]
		return m, m.saveSettingsCmd(settingsdto.UpdateInput{Theme: &name}, "theme: "+name)

	case "autostart":
		if len(parts) != 3 {
			m.status = "usage: autostart <breaks|work> <on|off>"
			return m, nil
		}
		on, ok := parseSwitch(parts[2])
		if !ok {
			m.status = "autostart expects on or off"
			return m, nil
		}
		update := settingsdto.UpdateInput{}
		switch parts[1] {
		case "breaks":
			update.AutoStartBreaks = &on
		case "work":
			update.AutoStartWork = &on
		default:
			m.status = "autostart applies to breaks or work"
			return m, nil
		}
		return m, m.saveSettingsCmd(update, "autostart "+parts[1]+" "+parts[2])

	case "skip":
		return m, m.timerCmd(m.timer.Skip)

	case "reset":
		return m, m.timerCmd(m.timer.Reset)

	case "mute":
		return m, m.toggleMuteCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func parseSwitch(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "on", "true", "yes":
		return true, true
	case "off", "false", "no":
		return false, true
	}
	return false, false
}
