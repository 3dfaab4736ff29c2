package normalize

import (
	"time"

	"github.com/karaage0703/pm-bot/internal/models"
)

// Reason strings rendered into the 期限切れ line. The parser recovers the
// classification from the はい/いいえ/不明 prefix, so these must stay aligned
// with the document grammar.
const (
	ReasonEndDatePast   = "はい（終了日が過去の日付）"
	ReasonEndDateFuture = "いいえ（終了日は未来の日付）"
	ReasonBodyDuePast   = "はい（本文内の期限が過去の日付）"
	ReasonBodyDueFuture = "いいえ（本文内の期限は未来の日付）"
	ReasonTaskClosed    = "いいえ（タスクは完了済み）"
	ReasonNoDeadlineSet = "不明（期限が設定されていません）"
)

// EvaluateOverdue classifies a task against today. The structured end date
// outranks the deadline mined from the body; a date that fails to parse
// falls through to the next rule instead of erroring. Closed state is only
// consulted when no date is usable.
func EvaluateOverdue(endDate, bodyDeadline string, state models.TaskState, today time.Time) models.OverdueStatus {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	if endDate != "" {
		if d, err := time.Parse(isoDate, endDate); err == nil {
			if d.Before(day) {
				return models.OverdueStatus{Kind: models.OverdueYes, Reason: ReasonEndDatePast}
			}
			return models.OverdueStatus{Kind: models.OverdueNo, Reason: ReasonEndDateFuture}
		}
	}

	if bodyDeadline != "" {
		if d, err := time.Parse(isoDate, bodyDeadline); err == nil {
			if d.Before(day) {
				return models.OverdueStatus{Kind: models.OverdueYes, Reason: ReasonBodyDuePast}
			}
			return models.OverdueStatus{Kind: models.OverdueNo, Reason: ReasonBodyDueFuture}
		}
	}

	if state == models.StateClosed {
		return models.OverdueStatus{Kind: models.OverdueNo, Reason: ReasonTaskClosed}
	}

	return models.OverdueStatus{Kind: models.OverdueUnknown, Reason: ReasonNoDeadlineSet}
}
