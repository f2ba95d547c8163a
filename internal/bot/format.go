package bot

import (
	"fmt"
	"strings"
	"unicode/utf16"

	dashboarddomain "taskbot/internal/dashboard/domain"
	"taskbot/internal/task/domain"
)

// maxMessageLength is Telegram's limit in UTF-16 code units.
const maxMessageLength = 4096

const dateLayout = "02.01.2006"

var priorityLabels = map[domain.Priority]string{
	domain.PriorityHigh:   "высокий",
	domain.PriorityMedium: "средний",
	domain.PriorityLow:    "низкий",
}

func priorityLabel(p domain.Priority) string {
	if label, ok := priorityLabels[p]; ok {
		return label
	}
	return string(p)
}

func statusEmoji(s domain.TaskStatus) string {
	switch s {
	case domain.TaskStatusCompleted:
		return "✅"
	case domain.TaskStatusInProgress:
		return "🔄"
	default:
		return "⏳"
	}
}

// writeDetails appends description, due date and priority lines.
func writeDetails(sb *strings.Builder, t *domain.Task, indent string) {
	if t.Description != "" {
		fmt.Fprintf(sb, "%s📝 %s\n", indent, t.Description)
	}
	if t.DueDate != nil {
		fmt.Fprintf(sb, "%s⏰ Срок: %s\n", indent, t.DueDate.Format(dateLayout))
	}
	fmt.Fprintf(sb, "%s🎯 Приоритет: %s\n", indent, priorityLabel(t.Priority))
}

func formatCreated(t *domain.Task) string {
	var sb strings.Builder
	sb.WriteString("✅ Задача создана:\n\n")
	fmt.Fprintf(&sb, "🆔 #%d\n", t.ID)
	fmt.Fprintf(&sb, "📌 %s\n", t.Title)
	writeDetails(&sb, t, "")
	if t.Assignee != nil {
		fmt.Fprintf(&sb, "👤 Исполнитель: %s\n", t.Assignee.Handle())
	}
	return sb.String()
}

func formatAssigned(t *domain.Task) string {
	var sb strings.Builder
	sb.WriteString("✅ Задача назначена:\n\n")
	fmt.Fprintf(&sb, "📌 %s\n", t.Title)
	writeDetails(&sb, t, "")
	if t.Assignee != nil {
		fmt.Fprintf(&sb, "👤 Исполнитель: %s", t.Assignee.Handle())
	}
	return sb.String()
}

func formatEdited(t *domain.Task, oldTitle string) string {
	var sb strings.Builder
	sb.WriteString("✅ Задача обновлена:\n\n")
	fmt.Fprintf(&sb, "📌 Старое название: %s\n", oldTitle)
	fmt.Fprintf(&sb, "📌 Новое название: %s\n", t.Title)
	writeDetails(&sb, t, "")
	if t.Assignee != nil {
		fmt.Fprintf(&sb, "👤 Исполнитель: %s", t.Assignee.Handle())
	}
	return sb.String()
}

func formatCompleted(t *domain.Task) string {
	return fmt.Sprintf("✅ Задача #%d выполнена:\n\n📌 %s", t.ID, t.Title)
}

// formatTaskList renders one block per task. showCreator selects which party
// is listed: the creator for /mytasks, the assignee for /created_tasks.
func formatTaskList(header string, tasks []*domain.Task, showCreator bool) string {
	var sb strings.Builder
	sb.WriteString(header)
	for _, t := range tasks {
		fmt.Fprintf(&sb, "%s #%d %s\n", statusEmoji(t.Status), t.ID, t.Title)
		writeDetails(&sb, t, "   ")
		switch {
		case showCreator && t.Creator != nil:
			fmt.Fprintf(&sb, "   👤 Создатель: %s\n", t.Creator.Handle())
		case !showCreator && t.Assignee != nil:
			fmt.Fprintf(&sb, "   👤 Исполнитель: %s\n", t.Assignee.Handle())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatStats(s *dashboarddomain.Summary) string {
	var sb strings.Builder
	sb.WriteString("📊 Статистика задач:\n\n")
	fmt.Fprintf(&sb, "Всего задач: %d\n", s.TotalTasks)
	fmt.Fprintf(&sb, "Выполнено задач: %d\n", s.CompletedTasks)
	fmt.Fprintf(&sb, "Активных пользователей: %d\n", s.ActiveUsers)
	fmt.Fprintf(&sb, "Процент выполнения: %.1f%%\n", s.CompletionRate)
	if len(s.ByPriority) > 0 {
		sb.WriteString("\n🎯 По приоритетам:\n")
		for _, pc := range s.ByPriority {
			fmt.Fprintf(&sb, "   %s: %d\n", priorityLabel(pc.Priority), pc.Count)
		}
	}
	if len(s.Users) > 0 {
		sb.WriteString("\n👥 Пользователи (создано / назначено / выполнено):\n")
		for _, u := range s.Users {
			fmt.Fprintf(&sb, "   %s: %d / %d / %d\n", u.Username, u.Created, u.Assigned, u.Completed)
		}
	}
	return sb.String()
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// splitMessage cuts text into chunks of at most limit UTF-16 units, preferring
// the blank lines between task blocks.
func splitMessage(text string, limit int) []string {
	if utf16Len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
			current.Reset()
		}
	}

	for _, block := range strings.SplitAfter(text, "\n\n") {
		if utf16Len(current.String())+utf16Len(block) <= limit {
			current.WriteString(block)
			continue
		}
		flush()
		for utf16Len(block) > limit {
			head, rest := cutUTF16(block, limit)
			chunks = append(chunks, head)
			block = rest
		}
		current.WriteString(block)
	}
	flush()
	return chunks
}

// cutUTF16 splits s after at most limit UTF-16 units without breaking a rune.
func cutUTF16(s string, limit int) (string, string) {
	n := 0
	for i, r := range s {
		w := utf16.RuneLen(r)
		if n+w > limit {
			return s[:i], s[i:]
		}
		n += w
	}
	return s, ""
}
