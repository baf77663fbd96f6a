package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// OwnerOnly lets through updates from ownerID and refuses everyone else
func OwnerOnly(ownerID int64, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil || sender.ID != ownerID {
				var senderID int64
				if sender != nil {
					senderID = sender.ID
				}
				logger.Warn("Refused update from unknown sender", zap.Int64("user_id", senderID))
				return c.Send("This quiz is private.")
			}

			return next(c)
		}
	}
}
