package export

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeExportRow = "export:row"

func NewExportRowTask(row Row) (*asynq.Task, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeExportRow, payload), nil
}
