package response

import "github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type OperatorResponse struct {
	Operator *queries.AuthorizedOperatorView `json:"operator"`
}
