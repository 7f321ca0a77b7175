package metrics

import (
	"time"
)

// RecordFrame records one processed frame.
func (r *Registry) RecordFrame(duration time.Duration, zoom float64, selected int) {
	if r == nil {
		return
	}
	r.FramesTotal.Inc()
	r.FrameDuration.Observe(duration.Seconds())
	r.Zoom.Set(zoom)
	r.SelectedNodes.Set(float64(selected))
}

// SetMode marks mode as the active interaction mode and clears every mode seen before.
func (r *Registry) SetMode(mode string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	known := false
	for _, m := range r.modes {
		if m == mode {
			known = true
			continue
		}
		r.InteractionMode.WithLabelValues(m).Set(0)
	}
	if !known {
		r.modes = append(r.modes, mode)
	}
	r.InteractionMode.WithLabelValues(mode).Set(1)
}

// RecordMutation counts a mutation request (add_link, delete_link, move, ...).
func (r *Registry) RecordMutation(op string) {
	if r == nil {
		return
	}
	r.MutationsTotal.WithLabelValues(op).Inc()
}

// RecordTransaction counts one transaction opened by the editor.
func (r *Registry) RecordTransaction() {
	if r == nil {
		return
	}
	r.TransactionsTotal.Inc()
}

// RecordLinkRejection counts a declined link gesture.
func (r *Registry) RecordLinkRejection(reason string) {
	if r == nil {
		return
	}
	r.LinkRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordContractViolation counts an out-of-range index seen during op.
func (r *Registry) RecordContractViolation(op string) {
	if r == nil {
		return
	}
	r.ContractViolations.WithLabelValues(op).Inc()
}

// RecordClipboardCommand counts copy, cut, paste and delete keyboard commands.
func (r *Registry) RecordClipboardCommand(command string) {
	if r == nil {
		return
	}
	r.ClipboardCommands.WithLabelValues(command).Inc()
}

// UpdateDocument publishes the document size.
func (r *Registry) UpdateDocument(nodes, links int) {
	if r == nil {
		return
	}
	r.DocumentNodes.Set(float64(nodes))
	r.DocumentLinks.Set(float64(links))
}

// RecordJournalEntry counts a committed journal entry of the given kind
// ("transaction" or "implicit").
func (r *Registry) RecordJournalEntry(kind string) {
	if r == nil {
		return
	}
	r.JournalEntriesTotal.WithLabelValues(kind).Inc()
}

// RecordClipboardPayload observes the size of an encoded clipboard payload.
func (r *Registry) RecordClipboardPayload(size int) {
	if r == nil {
		return
	}
	r.ClipboardBytes.Observe(float64(size))
}

// RecordSceneLoad counts a scene load attempt ("success" or "error").
func (r *Registry) RecordSceneLoad(status string) {
	if r == nil {
		return
	}
	r.SceneLoadsTotal.WithLabelValues(status).Inc()
}
