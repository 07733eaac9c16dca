package users_models

type SecretKey struct {
	ID     int    `gorm:"column:id;primaryKey"`
	Secret string `gorm:"column:secret"`
}

func (SecretKey) TableName() string {
	return "secret_keys"
}
