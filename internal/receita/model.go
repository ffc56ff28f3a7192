package receita

import (
	"time"

	"gorm.io/gorm"
)

type Receita struct {
	ID          uint      `gorm:"column:id_receita;primaryKey" json:"id"`
	NomeMedico  string    `gorm:"size:100;not null" json:"nomeMedico"`
	CRMMedico   string    `gorm:"column:crm_medico;size:20;not null" json:"crmMedico"`
	DataEmissao time.Time `gorm:"type:date" json:"dataEmissao"`
	Validade    time.Time `gorm:"type:date" json:"validade"`
}

func (Receita) TableName() string { return "receita" }

// VencidaEm informa se a receita já não vale na data informada (o dia da validade ainda vale).
func (r Receita) VencidaEm(data time.Time) bool {
	y, m, d := r.Validade.Date()
	fim := time.Date(y, m, d, 0, 0, 0, 0, data.Location()).AddDate(0, 0, 1)
	return !data.Before(fim)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Receita{})
}
