package delivery

import "taskbot/internal/dashboard/domain"

// plotlyFigure is the {data, layout} pair Plotly.newPlot expects
type plotlyFigure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

func priorityChart(s *domain.Summary) plotlyFigure {
	values := make([]int64, 0, len(s.ByPriority))
	labels := make([]string, 0, len(s.ByPriority))
	for _, pc := range s.ByPriority {
		values = append(values, pc.Count)
		labels = append(labels, string(pc.Priority))
	}
	return plotlyFigure{
		Data: []map[string]any{{
			"values": values,
			"labels": labels,
			"type":   "pie",
			"name":   "Задачи по приоритетам",
		}},
		Layout: map[string]any{
			"title":  "Задачи по приоритетам",
			"height": 400,
		},
	}
}

func timelineChart(s *domain.Summary) plotlyFigure {
	x := make([]string, 0, len(s.Timeline))
	y := make([]int64, 0, len(s.Timeline))
	for _, dc := range s.Timeline {
		x = append(x, dc.Date)
		y = append(y, dc.Count)
	}
	return plotlyFigure{
		Data: []map[string]any{{
			"x":    x,
			"y":    y,
			"type": "scatter",
			"mode": "lines+markers",
			"name": "Созданные задачи",
		}},
		Layout: map[string]any{
			"title":  "Динамика создания задач",
			"height": 400,
			"xaxis":  map[string]any{"title": "Дата"},
			"yaxis":  map[string]any{"title": "Количество задач"},
		},
	}
}
