package domain

// Identity проверенная личность вызывающего, полученная от внешнего провайдера
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// DisplayName возвращает имя для снимка владельца, при отсутствии имени - email
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// AsOwner снимок владельца для сохранения в бронировании
func (i Identity) AsOwner() Owner {
	return Owner{
		UserID:      i.UserID,
		Email:       i.Email,
		DisplayName: i.DisplayName(),
	}
}
