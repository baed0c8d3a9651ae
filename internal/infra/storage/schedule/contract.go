package schedule

import "github.com/m04kA/PawsBubbles-BookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
