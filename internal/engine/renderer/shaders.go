package renderer

// solidVertexShader transforms to clip space and passes view-space
// position and normal for lighting.
const solidVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vPosition;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    mat4 modelView = uView * uModel;
    vec4 viewPos = modelView * vec4(aPosition, 1.0);
    vPosition = viewPos.xyz;
    vNormal = mat3(modelView) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uProjection * viewPos;
}
`

// solidFragmentShader lights a flat color with up to four directional
// lights (Lambert diffuse, Blinn-Phong specular) plus a fixed ambient term.
const solidFragmentShader = `#version 410 core

const int LIGHT_COUNT = 4;

in vec3 vPosition;
in vec3 vNormal;
in vec2 vTexCoord;

uniform mat4 uView;
uniform vec4 uColor;
uniform vec3 uLightDir[LIGHT_COUNT];
uniform vec3 uLightDiffuse[LIGHT_COUNT];
uniform vec3 uLightSpecular[LIGHT_COUNT];
uniform int uLightEnabled[LIGHT_COUNT];

out vec4 FragColor;

const vec3 ambient = vec3(0.2);
const float shininess = 32.0;

void main() {
    vec3 n = normalize(vNormal);
    vec3 v = normalize(-vPosition);
    vec3 lit = ambient * uColor.rgb;

    for (int i = 0; i < LIGHT_COUNT; i++) {
        if (uLightEnabled[i] == 0) {
            continue;
        }
        vec3 l = normalize(mat3(uView) * uLightDir[i]);
        float diff = max(dot(n, l), 0.0);
        lit += diff * uLightDiffuse[i] * uColor.rgb;
        if (diff > 0.0) {
            vec3 h = normalize(l + v);
            lit += pow(max(dot(n, h), 0.0), shininess) * uLightSpecular[i] * 0.25;
        }
    }

    FragColor = vec4(clamp(lit, 0.0, 1.0), uColor.a);
}
`

// flatVertexShader and flatFragmentShader draw geometry in one color. They
// serve the selection outline and the pick ID pass.
const flatVertexShader = `#version 410 core

layout (location = 0) in vec3 aPosition;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

void main() {
    gl_Position = uProjection * uView * uModel * vec4(aPosition, 1.0);
}
`

const flatFragmentShader = `#version 410 core

uniform vec4 uColor;

out vec4 FragColor;

void main() {
    FragColor = uColor;
}
`
