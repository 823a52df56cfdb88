package model

// 配送先住所。バックエンド所有のレコードをそのまま通す。
type Address struct {
	AddressID   int64  `json:"addressId"`
	UserID      int64  `json:"userId"`
	AddressType string `json:"addressType"`
	Street      string `json:"street"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
}
