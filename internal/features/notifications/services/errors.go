package notifications_services

import "opensourcetogether/internal/util/errs"

var ErrNotificationNotFound = errs.NotFound(errs.CodeNotificationNotFound, "Notification not found")
