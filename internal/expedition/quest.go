package expedition

import "github.com/samdwyer/starblade/internal/gamedata"

// QuestStatus is the progress state of a quest.
type QuestStatus string

const (
	QuestOpen      QuestStatus = "open"
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
)

// Quest tracks one story objective.
type Quest struct {
	ID          string
	Title       string
	Description string
	Status      QuestStatus
}

// QuestLog holds the party's quests in definition order.
type QuestLog struct {
	quests []*Quest
}

// NewQuestLog creates a quest log from definitions.
func NewQuestLog(defs []gamedata.QuestDef) *QuestLog {
	log := &QuestLog{quests: make([]*Quest, 0, len(defs))}
	for _, d := range defs {
		log.quests = append(log.quests, &Quest{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Status:      QuestStatus(d.Status),
		})
	}
	return log
}

// Get returns the quest with the given id, or nil.
func (l *QuestLog) Get(id string) *Quest {
	for _, q := range l.quests {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// Complete marks a quest completed. It returns false if the quest is
// unknown or already completed.
func (l *QuestLog) Complete(id string) bool {
	q := l.Get(id)
	if q == nil || q.Status == QuestCompleted {
		return false
	}
	q.Status = QuestCompleted
	return true
}

// Activate moves an open quest to active. Other states are left alone.
func (l *QuestLog) Activate(id string) bool {
	q := l.Get(id)
	if q == nil || q.Status != QuestOpen {
		return false
	}
	q.Status = QuestActive
	return true
}

// All returns copies of every quest.
func (l *QuestLog) All() []Quest {
	out := make([]Quest, len(l.quests))
	for i, q := range l.quests {
		out[i] = *q
	}
	return out
}
