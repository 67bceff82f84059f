package booking

import "github.com/m04kA/PFM-BookingService/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов
// Поддерживает *sql.DB и *sql.Tx (через txmanager)
type DBExecutor = txmanager.Executor
