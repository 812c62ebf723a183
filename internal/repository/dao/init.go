package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Grupo{},
		&Departamento{},
		&Cargo{},
		&Candidato{},
		&CodigoAcceso{},
		&Votacion{},
		&Resultado{},
	)
}
